// Package derive computes the form state that follows mechanically from user
// input: the budget tier, which sections of the form are visible, and the
// per-fiscal-year budget lines implied by an activity's date range.
package derive

import (
	"time"

	"github.com/shopspring/decimal"
)

// Threshold is the budget amount at which milestones become mandatory and
// the single-PEP regime is switched off.
var Threshold = decimal.NewFromInt(1_000_000)

type BudgetTier string

const (
	BelowThreshold     BudgetTier = "below_threshold"
	AtOrAboveThreshold BudgetTier = "at_or_above_threshold"
)

// Tier classifies a budget amount against the milestone threshold.
func Tier(amount decimal.Decimal) BudgetTier {
	if amount.GreaterThanOrEqual(Threshold) {
		return AtOrAboveThreshold
	}
	return BelowThreshold
}

// SectionVisibility says which of the two mutually-exclusive structure
// sections the form shows for a given budget amount.
type SectionVisibility struct {
	Milestones  bool
	PepSelector bool
}

// Sections derives section visibility from the budget amount. At or above
// the threshold the milestone tree is required and shown; strictly between
// zero and the threshold only the PEP selector is shown; at zero neither is.
func Sections(amount decimal.Decimal) SectionVisibility {
	switch {
	case amount.GreaterThanOrEqual(Threshold):
		return SectionVisibility{Milestones: true}
	case amount.GreaterThan(decimal.Zero):
		return SectionVisibility{PepSelector: true}
	default:
		return SectionVisibility{}
	}
}

// YearsInRange returns the ascending fiscal years covered by [start, end],
// inclusive of both endpoint years. The sequence is empty when either date
// is missing or the range is inverted in calendar terms.
func YearsInRange(start, end *time.Time) []int {
	if start == nil || end == nil || end.Before(*start) {
		return nil
	}
	years := make([]int, 0, end.Year()-start.Year()+1)
	for y := start.Year(); y <= end.Year(); y++ {
		years = append(years, y)
	}
	return years
}

// YearLine is a single per-fiscal-year budget amount. Lines exist only as a
// byproduct of an activity's date range and are recomputed whenever the
// range changes.
type YearLine struct {
	Year   int
	Amount decimal.Decimal
}

// ReconcileYearLines builds the year-line list for the required years,
// reusing the amount of any existing line whose year survives and
// zero-filling years that are newly covered. Lines for years outside the
// requirement are dropped. The result follows the order of years, and the
// function is idempotent.
func ReconcileYearLines(existing []YearLine, years []int) []YearLine {
	byYear := make(map[int]decimal.Decimal, len(existing))
	for _, l := range existing {
		byYear[l.Year] = l.Amount
	}

	out := make([]YearLine, 0, len(years))
	for _, y := range years {
		amount := decimal.Zero
		if a, ok := byYear[y]; ok {
			amount = a
		}
		out = append(out, YearLine{Year: y, Amount: amount})
	}
	return out
}
