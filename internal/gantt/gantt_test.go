package gantt

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvbarbosa/capex/internal/domain"
)

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestProject_MilestoneSpansActivities(t *testing.T) {
	tree := domain.NewStructureTree()
	m := tree.AddMilestone("Construction")
	a1 := tree.AddActivity(m.ID)
	a1.Title = "Foundation"
	tree.SetActivityDates(a1.ID, date("2026-01-10"), date("2026-03-01"))
	a2 := tree.AddActivity(m.ID)
	a2.Title = "Walls"
	tree.SetActivityDates(a2.ID, date("2026-02-15"), date("2026-06-30"))

	rows := Project(tree)

	require.Len(t, rows, 3)
	summary := rows[0]
	assert.Equal(t, CategoryMilestone, summary.Category)
	assert.Equal(t, "Construction", summary.Label)
	assert.Equal(t, *date("2026-01-10"), summary.Start)
	assert.Equal(t, *date("2026-06-30"), summary.End)
	assert.Empty(t, summary.ParentID)

	assert.Equal(t, CategoryActivity, rows[1].Category)
	assert.Equal(t, m.ID, rows[1].ParentID)
	assert.Equal(t, m.ID, rows[2].ParentID)
}

func TestProject_EmptyMilestoneProducesNoRow(t *testing.T) {
	tree := domain.NewStructureTree()
	tree.AddMilestone("Empty")

	assert.Empty(t, Project(tree))
}

func TestProject_UndatedActivitySkipped(t *testing.T) {
	tree := domain.NewStructureTree()
	m := tree.AddMilestone("")
	tree.AddActivity(m.ID) // no dates at all
	a := tree.AddActivity(m.ID)
	a.Title = "Dated"
	tree.SetActivityDates(a.ID, date("2026-01-01"), date("2026-02-01"))

	rows := Project(tree)
	require.Len(t, rows, 2, "summary plus the single dated activity")
	assert.Equal(t, "Dated", rows[1].Label)
}

func TestProject_MissingEndDefaultsToOneDay(t *testing.T) {
	tree := domain.NewStructureTree()
	m := tree.AddMilestone("")
	a := tree.AddActivity(m.ID)
	a.Title = "Open ended"
	a.Start = date("2026-05-01") // direct set keeps End nil

	rows := Project(tree)
	require.Len(t, rows, 2)
	assert.Equal(t, *date("2026-05-02"), rows[1].End)
	assert.Equal(t, 1, rows[1].Duration)
	assert.Nil(t, a.End, "display default must not be persisted to the tree")
}

func TestProject_TooltipHasBudgetAndPep(t *testing.T) {
	tree := domain.NewStructureTree()
	m := tree.AddMilestone("")
	a := tree.AddActivity(m.ID)
	a.Title = "Equipment"
	tree.SetActivityDates(a.ID, date("2025-01-01"), date("2026-12-31"))
	tree.SetYearAmount(a.ID, 2025, decimal.NewFromInt(150000))
	tree.SetYearAmount(a.ID, 2026, decimal.NewFromInt(100000))
	tree.SetActivityPep(a.ID, "PEP-042")

	rows := Project(tree)
	require.Len(t, rows, 2)
	assert.Contains(t, rows[1].Tooltip, "R$ 250.000,00")
	assert.Contains(t, rows[1].Tooltip, "PEP-042")
}
