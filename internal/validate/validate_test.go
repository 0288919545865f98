package validate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvbarbosa/capex/internal/derive"
	"github.com/mvbarbosa/capex/internal/domain"
)

func fixedClock() time.Time {
	return time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
}

func newValidator() *Validator {
	return &Validator{Now: fixedClock}
}

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

// completeProject returns a project with every required scalar filled.
func completeProject(budget string) *domain.Project {
	return &domain.Project{
		Name:               "Plant expansion",
		Description:        "Expand line 3 capacity",
		Justification:      "Demand exceeds capacity",
		SponsorArea:        "Operations",
		Sponsor:            "A. Director",
		Requester:          "B. Engineer",
		CostCenter:         "CC-1020",
		InvestmentType:     "expansion",
		Category:           "industrial",
		ApprovalYear:       2026,
		BudgetAmount:       decimal.RequireFromString(budget),
		ExpectedStart:      date("2026-01-01"),
		ExpectedEnd:        date("2027-12-31"),
		KPIName:            "Throughput",
		KPIBaseline:        "100 t/day",
		KPITarget:          "140 t/day",
		StrategicAlignment: "Growth pillar",
		PaybackMonths:      30,
		NetPresentValue:    decimal.RequireFromString("250000"),
		Benefits:           "Higher output",
		RiskNotes:          "Supplier lead times",
		Premises:           "Permits granted on time",
		Restrictions:       "No production stop allowed",
		Status:             domain.StatusDraft,
	}
}

// completeTree returns one milestone with one fully-filled activity.
func completeTree() *domain.StructureTree {
	tree := domain.NewStructureTree()
	m := tree.AddMilestone("")
	a := tree.AddActivity(m.ID)
	a.Title = "Site preparation"
	a.Description = "Clear and level the site"
	tree.SetActivityDates(a.ID, date("2026-02-01"), date("2026-11-30"))
	tree.SetActivityPep(a.ID, "PEP-010")
	tree.SetYearAmount(a.ID, 2026, decimal.NewFromInt(500000))
	return tree
}

func TestValidate_CompleteFormPasses(t *testing.T) {
	res := newValidator().Validate(completeProject("1200000"), completeTree(),
		derive.Sections(decimal.RequireFromString("1200000")))
	assert.True(t, res.OK, "violations: %v", res.Violations)
	assert.Empty(t, res.Violations)
}

func TestValidate_MissingScalarsReportedInDeclaredOrder(t *testing.T) {
	p := completeProject("1200000")
	p.Name = ""
	p.KPITarget = "  " // whitespace counts as blank

	res := newValidator().Validate(p, completeTree(),
		derive.SectionVisibility{Milestones: true})

	require.Len(t, res.Violations, 2)
	assert.Equal(t, "name", res.Violations[0].Field)
	assert.Equal(t, "Project name is required", res.Violations[0].Message)
	assert.Equal(t, "kpiTarget", res.Violations[1].Field)
}

func TestValidate_UnknownInvestmentType(t *testing.T) {
	p := completeProject("1200000")
	p.InvestmentType = "speculative"

	res := newValidator().Validate(p, completeTree(),
		derive.SectionVisibility{Milestones: true})

	require.Len(t, res.Violations, 1)
	assert.Equal(t, "investmentType", res.Violations[0].Field)
	assert.Contains(t, res.Violations[0].Message, "speculative")
}

func TestValidate_ApprovalYearInFuture(t *testing.T) {
	p := completeProject("1200000")
	p.ApprovalYear = 2027 // clock says 2026

	res := newValidator().Validate(p, completeTree(),
		derive.SectionVisibility{Milestones: true})

	require.False(t, res.OK)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, "approvalYear", res.Violations[0].Field)
}

func TestValidate_HighBudgetWithoutMilestones(t *testing.T) {
	p := completeProject("1200000")

	res := newValidator().Validate(p, domain.NewStructureTree(),
		derive.Sections(p.BudgetAmount))

	require.Len(t, res.Violations, 1)
	assert.Equal(t, Violation{Field: "milestones", Message: "requires at least 1 milestone"},
		res.Violations[0])
}

func TestValidate_LowBudgetWithoutPepSelection(t *testing.T) {
	p := completeProject("400000")

	res := newValidator().Validate(p, domain.NewStructureTree(),
		derive.Sections(p.BudgetAmount))

	require.Len(t, res.Violations, 1)
	assert.Equal(t, Violation{Field: "pepCode", Message: "select a PEP element"},
		res.Violations[0])
}

func TestValidate_LowBudgetWithPepSelected(t *testing.T) {
	p := completeProject("400000")
	p.PepCode = "PEP-001"

	res := newValidator().Validate(p, domain.NewStructureTree(),
		derive.Sections(p.BudgetAmount))
	assert.True(t, res.OK, "violations: %v", res.Violations)
}

func TestValidate_PepRuleSkippedWhenSelectorHidden(t *testing.T) {
	p := completeProject("400000")

	// Selector not shown: no PEP violation even without a selection.
	res := newValidator().Validate(p, domain.NewStructureTree(),
		derive.SectionVisibility{})
	assert.True(t, res.OK, "violations: %v", res.Violations)
}

func TestValidate_MilestoneRules(t *testing.T) {
	p := completeProject("1200000")
	tree := completeTree()
	empty := tree.AddMilestone("Commissioning") // milestone with no activities
	_ = empty

	res := newValidator().Validate(p, tree, derive.SectionVisibility{Milestones: true})

	require.Len(t, res.Violations, 1)
	assert.Equal(t, "milestones[1]", res.Violations[0].Field)
	assert.Contains(t, res.Violations[0].Message, "Commissioning")
}

func TestValidate_ActivityRules(t *testing.T) {
	p := completeProject("1200000")
	tree := domain.NewStructureTree()
	m := tree.AddMilestone("")
	a := tree.AddActivity(m.ID)
	// Everything about the activity is missing.

	res := newValidator().Validate(p, tree, derive.SectionVisibility{Milestones: true})

	fields := make([]string, 0, len(res.Violations))
	for _, v := range res.Violations {
		fields = append(fields, v.Field)
	}
	assert.Equal(t, []string{
		"milestones[0].activities[0].title",
		"milestones[0].activities[0].startDate",
		"milestones[0].activities[0].endDate",
		"milestones[0].activities[0].description",
		"milestones[0].activities[0].pepCode",
		"milestones[0].activities[0].years",
	}, fields)
	_ = a
}

func TestValidate_InvertedActivityDates(t *testing.T) {
	p := completeProject("1200000")
	tree := completeTree()
	a := tree.Milestones[0].Activities[0]
	// Bypass SetActivityDates so the year lines survive and only the
	// ordering rule fires.
	a.Start = date("2026-11-30")
	a.End = date("2026-02-01")

	res := newValidator().Validate(p, tree, derive.SectionVisibility{Milestones: true})

	require.Len(t, res.Violations, 1)
	assert.Equal(t, "milestones[0].activities[0].endDate", res.Violations[0].Field)
	assert.Contains(t, res.Violations[0].Message, "end on or after")
}

func TestValidate_NegativeYearAmount(t *testing.T) {
	p := completeProject("1200000")
	tree := completeTree()
	a := tree.Milestones[0].Activities[0]
	a.Years[0].Amount = decimal.NewFromInt(-10) // direct mutation bypasses clamping

	res := newValidator().Validate(p, tree, derive.SectionVisibility{Milestones: true})

	require.Len(t, res.Violations, 1)
	assert.Contains(t, res.Violations[0].Message, "zero or positive")
}

func TestValidate_Deterministic(t *testing.T) {
	p := completeProject("1200000")
	p.Name = ""
	tree := completeTree()

	first := newValidator().Validate(p, tree, derive.SectionVisibility{Milestones: true})
	second := newValidator().Validate(p, tree, derive.SectionVisibility{Milestones: true})
	assert.Equal(t, first, second)
}
