// Package validate gates submission: it walks the whole form and structure
// tree and collects every violation in a defined order. Drafts bypass this
// package entirely.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mvbarbosa/capex/internal/derive"
	"github.com/mvbarbosa/capex/internal/domain"
)

// Violation is one human-readable rule failure, tied to the offending field
// when one exists so the form can scroll to it.
type Violation struct {
	Field   string
	Message string
}

// Result is the outcome of a full validation pass.
type Result struct {
	OK         bool
	Violations []Violation
}

// Validator runs the submission gate. Now is injectable for the
// approval-year rule; it defaults to time.Now.
type Validator struct {
	Now func() time.Time
}

// New returns a Validator using the real clock.
func New() *Validator {
	return &Validator{Now: time.Now}
}

// Validate evaluates all rules in order without short-circuiting:
// required scalars in declared order, the approval-year cap, the
// tier-dependent structure rules, then milestones, activities and year
// lines in tree order.
func (v *Validator) Validate(p *domain.Project, tree *domain.StructureTree, vis derive.SectionVisibility) Result {
	var out []Violation
	add := func(field, msg string) {
		out = append(out, Violation{Field: field, Message: msg})
	}

	// Rule 1: required project scalars.
	for _, f := range RequiredFields {
		if f.blank(p) {
			add(f.Key, fmt.Sprintf("%s is required", f.Label))
			continue
		}
		if f.negative != nil && f.negative(p) {
			add(f.Key, fmt.Sprintf("%s must be zero or positive", f.Label))
		}
	}

	// A filled investment type must come from the accepted set.
	if it := strings.TrimSpace(p.InvestmentType); it != "" && !domain.ValidInvestmentTypes[it] {
		add("investmentType", fmt.Sprintf("Investment type %q is not recognized", it))
	}

	// Rule 2: approval year cannot sit in the future.
	if y := p.ApprovalYear; y > v.Now().Year() {
		add("approvalYear", fmt.Sprintf("Approval year %d cannot be later than the current year", y))
	}

	tier := derive.Tier(p.BudgetAmount)

	// Rule 3: milestones are mandatory at or above the threshold.
	if tier == derive.AtOrAboveThreshold && tree.Empty() {
		add("milestones", "requires at least 1 milestone")
	}

	// Rule 4: below the threshold a shown PEP selector must have a selection.
	if tier == derive.BelowThreshold && p.BudgetAmount.GreaterThan(decimal.Zero) &&
		vis.PepSelector && strings.TrimSpace(p.PepCode) == "" {
		add("pepCode", "select a PEP element")
	}

	// Rules 5 and 6: the structure tree, in tree order.
	for mi, m := range tree.Milestones {
		mPrefix := fmt.Sprintf("milestones[%d]", mi)

		if strings.TrimSpace(m.Name) == "" {
			add(mPrefix+".name", fmt.Sprintf("Milestone %d needs a name", mi+1))
		}
		if len(m.Activities) == 0 {
			add(mPrefix, fmt.Sprintf("Milestone %q needs at least one activity", m.Name))
		}

		for ai, a := range m.Activities {
			out = append(out, v.validateActivity(mPrefix, m, ai, a)...)
		}
	}

	return Result{OK: len(out) == 0, Violations: out}
}

func (v *Validator) validateActivity(mPrefix string, m *domain.Milestone, ai int, a *domain.Activity) []Violation {
	var out []Violation
	prefix := fmt.Sprintf("%s.activities[%d]", mPrefix, ai)
	label := strings.TrimSpace(a.Title)
	if label == "" {
		label = fmt.Sprintf("activity %d", ai+1)
	}
	add := func(field, msg string) {
		out = append(out, Violation{Field: field, Message: msg})
	}

	if strings.TrimSpace(a.Title) == "" {
		add(prefix+".title", fmt.Sprintf("Milestone %q: activity %d needs a title", m.Name, ai+1))
	}
	if a.Start == nil {
		add(prefix+".startDate", fmt.Sprintf("Milestone %q: %s needs a start date", m.Name, label))
	}
	if a.End == nil {
		add(prefix+".endDate", fmt.Sprintf("Milestone %q: %s needs an end date", m.Name, label))
	}
	if a.Start != nil && a.End != nil && a.End.Before(*a.Start) {
		add(prefix+".endDate", fmt.Sprintf("Milestone %q: %s must end on or after its start date", m.Name, label))
	}
	if strings.TrimSpace(a.Description) == "" {
		add(prefix+".description", fmt.Sprintf("Milestone %q: %s needs a description", m.Name, label))
	}
	if strings.TrimSpace(a.PepCode) == "" {
		add(prefix+".pepCode", fmt.Sprintf("Milestone %q: %s needs a PEP element", m.Name, label))
	}
	if len(a.Years) == 0 {
		add(prefix+".years", fmt.Sprintf("Milestone %q: %s has no budget years (check its dates)", m.Name, label))
	}
	for _, l := range a.Years {
		if l.Amount.IsNegative() {
			add(fmt.Sprintf("%s.years[%d]", prefix, l.Year),
				fmt.Sprintf("Milestone %q: %s year %d amount must be zero or positive", m.Name, label, l.Year))
		}
	}

	return out
}
