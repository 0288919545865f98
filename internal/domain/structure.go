package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mvbarbosa/capex/internal/derive"
)

// YearLine is an alias of derive.YearLine so tree consumers don't need a
// second import for the derived per-year budget entries.
type YearLine = derive.YearLine

var defaultMilestonePattern = regexp.MustCompile(`^Milestone \d+$`)

// Milestone groups activities under a project. ID is a client-side identity
// for the form session; StoreID is the remote list item id, zero until the
// milestone has been persisted.
type Milestone struct {
	ID         string
	StoreID    int
	Name       string
	Activities []*Activity
}

// Activity is a unit of work inside a milestone. Its year lines are derived
// from the date range and must never be edited independently of it.
type Activity struct {
	ID          string
	StoreID     int
	Title       string
	Start       *time.Time
	End         *time.Time
	Description string
	PepCode     string
	Years       []YearLine
}

// TotalBudget sums the activity's year-line amounts.
func (a *Activity) TotalBudget() decimal.Decimal {
	total := decimal.Zero
	for _, l := range a.Years {
		total = total.Add(l.Amount)
	}
	return total
}

// StructureTree is the in-memory milestone → activity → year-line hierarchy
// owned by the active form session. Slice order is presentation order and,
// on save, persistence order. All operations are total: invalid input is
// clamped or ignored here and reported by the validator instead.
type StructureTree struct {
	Milestones []*Milestone
}

// NewStructureTree returns an empty tree.
func NewStructureTree() *StructureTree {
	return &StructureTree{}
}

// AddMilestone appends a milestone. A blank name gets the ordinal default
// ("Milestone N"); defaults are renumbered after every add or remove.
func (t *StructureTree) AddMilestone(name string) *Milestone {
	m := &Milestone{ID: uuid.New().String(), Name: name}
	t.Milestones = append(t.Milestones, m)
	if name == "" {
		m.Name = fmt.Sprintf("Milestone %d", len(t.Milestones))
	}
	t.renumberDefaults()
	return m
}

// RemoveMilestone removes the milestone with the given client id. Unknown
// ids are ignored.
func (t *StructureTree) RemoveMilestone(id string) {
	for i, m := range t.Milestones {
		if m.ID == id {
			t.Milestones = append(t.Milestones[:i], t.Milestones[i+1:]...)
			t.renumberDefaults()
			return
		}
	}
}

// renumberDefaults rewrites ordinal default names to match current
// positions. Names the user has customized never match the default pattern
// and are left untouched.
func (t *StructureTree) renumberDefaults() {
	for i, m := range t.Milestones {
		if defaultMilestonePattern.MatchString(m.Name) {
			m.Name = fmt.Sprintf("Milestone %d", i+1)
		}
	}
}

// Milestone finds a milestone by client id.
func (t *StructureTree) Milestone(id string) *Milestone {
	for _, m := range t.Milestones {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// AddActivity appends a blank activity to the given milestone.
func (t *StructureTree) AddActivity(milestoneID string) *Activity {
	m := t.Milestone(milestoneID)
	if m == nil {
		return nil
	}
	a := &Activity{ID: uuid.New().String()}
	m.Activities = append(m.Activities, a)
	return a
}

// RemoveActivity removes an activity from a milestone. Unknown ids are
// ignored.
func (t *StructureTree) RemoveActivity(milestoneID, activityID string) {
	m := t.Milestone(milestoneID)
	if m == nil {
		return
	}
	for i, a := range m.Activities {
		if a.ID == activityID {
			m.Activities = append(m.Activities[:i], m.Activities[i+1:]...)
			return
		}
	}
}

// Activity finds an activity by client id across all milestones.
func (t *StructureTree) Activity(id string) *Activity {
	for _, m := range t.Milestones {
		for _, a := range m.Activities {
			if a.ID == id {
				return a
			}
		}
	}
	return nil
}

// SetActivityDates updates an activity's date range and reconciles its year
// lines: amounts for years still in range survive, years that fell out are
// dropped, newly covered years start at zero. An incomplete or inverted
// range clears all lines.
func (t *StructureTree) SetActivityDates(activityID string, start, end *time.Time) {
	a := t.Activity(activityID)
	if a == nil {
		return
	}
	a.Start = start
	a.End = end
	a.Years = derive.ReconcileYearLines(a.Years, derive.YearsInRange(start, end))
}

// SetActivityPep records the budget-element selection for an activity.
func (t *StructureTree) SetActivityPep(activityID, code string) {
	if a := t.Activity(activityID); a != nil {
		a.PepCode = code
	}
}

// SetYearAmount sets the amount of one of an activity's year lines.
// Negative amounts are clamped to zero; a year outside the activity's
// derived range is ignored.
func (t *StructureTree) SetYearAmount(activityID string, year int, amount decimal.Decimal) {
	a := t.Activity(activityID)
	if a == nil {
		return
	}
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	for i := range a.Years {
		if a.Years[i].Year == year {
			a.Years[i].Amount = amount
			return
		}
	}
}

// Clear empties the tree. Used when a tier change hides the milestone
// section so no stale structure survives.
func (t *StructureTree) Clear() {
	t.Milestones = nil
}

// Empty reports whether the tree holds no milestones.
func (t *StructureTree) Empty() bool {
	return len(t.Milestones) == 0
}

// TotalBudget sums every year line in the tree.
func (t *StructureTree) TotalBudget() decimal.Decimal {
	total := decimal.Zero
	for _, m := range t.Milestones {
		for _, a := range m.Activities {
			total = total.Add(a.TotalBudget())
		}
	}
	return total
}
