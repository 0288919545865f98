package session

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvbarbosa/capex/internal/domain"
)

func TestApplyBudget_TierTransitions(t *testing.T) {
	s := New(domain.NewCatalog(nil))

	s.ApplyBudget(decimal.NewFromInt(1_200_000))
	assert.True(t, s.Visibility.Milestones)
	assert.False(t, s.Visibility.PepSelector)

	s.ApplyBudget(decimal.NewFromInt(400_000))
	assert.False(t, s.Visibility.Milestones)
	assert.True(t, s.Visibility.PepSelector)

	s.ApplyBudget(decimal.Zero)
	assert.False(t, s.Visibility.Milestones)
	assert.False(t, s.Visibility.PepSelector)
}

func TestApplyBudget_ClearsHiddenMilestoneSection(t *testing.T) {
	s := New(domain.NewCatalog(nil))
	s.ApplyBudget(decimal.NewFromInt(1_200_000))
	s.Tree.AddMilestone("")
	require.False(t, s.Tree.Empty())

	// Dropping below the threshold hides the milestone section and clears it.
	s.ApplyBudget(decimal.NewFromInt(500_000))
	assert.True(t, s.Tree.Empty())
}

func TestApplyBudget_ClearsHiddenPepSelection(t *testing.T) {
	s := New(domain.NewCatalog(nil))
	s.ApplyBudget(decimal.NewFromInt(500_000))
	s.Project.PepCode = "PEP-001"

	s.ApplyBudget(decimal.NewFromInt(2_000_000))
	assert.Empty(t, s.Project.PepCode)
}

func TestApplyBudget_SameTierKeepsValues(t *testing.T) {
	s := New(domain.NewCatalog(nil))
	s.ApplyBudget(decimal.NewFromInt(1_200_000))
	s.Tree.AddMilestone("Kept")

	s.ApplyBudget(decimal.NewFromInt(3_000_000))
	require.Len(t, s.Tree.Milestones, 1)
	assert.Equal(t, "Kept", s.Tree.Milestones[0].Name)
}

func TestReset(t *testing.T) {
	s := New(domain.NewCatalog([]domain.PEP{{Code: "PEP-001"}}))
	s.ApplyBudget(decimal.NewFromInt(1_200_000))
	s.Tree.AddMilestone("")
	s.Project.Name = "Old"

	s.Reset()

	assert.True(t, s.Tree.Empty())
	assert.Empty(t, s.Project.Name)
	assert.False(t, s.Visibility.Milestones)
	assert.Equal(t, 1, s.Catalog.Len(), "catalog snapshot survives a reset")
}
