package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvbarbosa/capex/internal/derive"
	"github.com/mvbarbosa/capex/internal/domain"
	"github.com/mvbarbosa/capex/internal/liststore"
	"github.com/mvbarbosa/capex/internal/testutil"
	"github.com/mvbarbosa/capex/internal/validate"
)

func testValidator() *validate.Validator {
	return &validate.Validator{Now: func() time.Time {
		return time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	}}
}

func draftProject() *domain.Project {
	return &domain.Project{
		Name:               "Line 3 expansion",
		Description:        "d",
		Justification:      "j",
		SponsorArea:        "Operations",
		Sponsor:            "s",
		Requester:          "r",
		CostCenter:         "CC-1",
		InvestmentType:     "expansion",
		Category:           "industrial",
		ApprovalYear:       2026,
		BudgetAmount:       decimal.NewFromInt(400000),
		ExpectedStart:      date("2026-01-01"),
		ExpectedEnd:        date("2027-12-31"),
		KPIName:            "k",
		KPIBaseline:        "b",
		KPITarget:          "t",
		StrategicAlignment: "a",
		PaybackMonths:      24,
		NetPresentValue:    decimal.NewFromInt(1),
		Benefits:           "b",
		RiskNotes:          "r",
		Premises:           "p",
		Restrictions:       "r",
	}
}

func newProjectService(store liststore.Client) ProjectService {
	return NewProjectService(store, NewStructureService(store), testValidator())
}

func TestProjectService_CreateDraftAssignsIdentity(t *testing.T) {
	store := testutil.NewFakeStore()
	svc := newProjectService(store)

	p := draftProject()
	p.Name = "" // drafts may be incomplete
	require.NoError(t, svc.CreateDraft(context.Background(), p))

	require.True(t, p.Persisted())
	assert.Equal(t, domain.StatusDraft, p.Status)
	assert.Equal(t, 1, store.Count(liststore.CollectionProjects))
}

func TestProjectService_UpdateDraftRequiresIdentity(t *testing.T) {
	svc := newProjectService(testutil.NewFakeStore())
	err := svc.UpdateDraft(context.Background(), draftProject())
	assert.ErrorIs(t, err, ErrNotPersisted)
}

func TestProjectService_SubmitBlockedByValidation(t *testing.T) {
	store := testutil.NewFakeStore()
	svc := newProjectService(store)

	p := draftProject() // low budget, no PEP selected
	outcome, err := svc.Submit(context.Background(), p, domain.NewStructureTree(),
		derive.Sections(p.BudgetAmount))

	require.NoError(t, err)
	assert.False(t, outcome.Submitted)
	require.Len(t, outcome.Validation.Violations, 1)
	assert.Equal(t, "select a PEP element", outcome.Validation.Violations[0].Message)
	assert.Empty(t, store.Calls, "a blocked submit must not touch the store")
}

func TestProjectService_SubmitLowBudgetWithPep(t *testing.T) {
	store := testutil.NewFakeStore()
	svc := newProjectService(store)

	p := draftProject()
	p.PepCode = "PEP-001"
	outcome, err := svc.Submit(context.Background(), p, domain.NewStructureTree(),
		derive.Sections(p.BudgetAmount))

	require.NoError(t, err)
	assert.True(t, outcome.Submitted)
	assert.Equal(t, domain.StatusSubmitted, p.Status)

	record, err := store.GetByID(context.Background(), liststore.CollectionProjects, *p.StoreID)
	require.NoError(t, err)
	assert.Equal(t, "submitted", record.StringField(liststore.FieldStatus))
	assert.Equal(t, "PEP-001", record.StringField("pepCode"))
	assert.Equal(t, 0, store.Count(liststore.CollectionMilestones),
		"no structure is written in the PEP regime")
}

func TestProjectService_SubmitHighBudgetSavesStructure(t *testing.T) {
	store := testutil.NewFakeStore()
	svc := newProjectService(store)

	p := draftProject()
	p.BudgetAmount = decimal.NewFromInt(1_200_000)
	tree := buildTree()

	outcome, err := svc.Submit(context.Background(), p, tree, derive.Sections(p.BudgetAmount))

	require.NoError(t, err)
	assert.True(t, outcome.Submitted)
	assert.Equal(t, 2, store.Count(liststore.CollectionMilestones))
	assert.Equal(t, 4, store.Count(liststore.CollectionActivities))
	assert.Equal(t, 6, store.Count(liststore.CollectionBudget))
}

func TestProjectService_SubmitAfterTierDowngradeClearsStoredStructure(t *testing.T) {
	store := testutil.NewFakeStore()
	structureSvc := NewStructureService(store)
	svc := NewProjectService(store, structureSvc, testValidator())
	ctx := context.Background()

	// First pass: high budget, full tree persisted.
	p := draftProject()
	p.BudgetAmount = decimal.NewFromInt(1_200_000)
	require.NoError(t, svc.CreateDraft(ctx, p))
	require.NoError(t, structureSvc.Save(ctx, buildTree(), *p.StoreID, p.ApprovalYear))
	require.Equal(t, 2, store.Count(liststore.CollectionMilestones))

	// Budget drops below the threshold; the session clears the tree and the
	// user picks a PEP instead.
	p.BudgetAmount = decimal.NewFromInt(400_000)
	p.PepCode = "PEP-001"
	outcome, err := svc.Submit(ctx, p, domain.NewStructureTree(), derive.Sections(p.BudgetAmount))

	require.NoError(t, err)
	require.True(t, outcome.Submitted)
	assert.Equal(t, 0, store.Count(liststore.CollectionMilestones),
		"a submitted below-threshold proposal must not carry milestone rows")
	assert.Equal(t, 0, store.Count(liststore.CollectionActivities))
	assert.Equal(t, 0, store.Count(liststore.CollectionBudget))
}

func TestProjectService_GetRoundTrip(t *testing.T) {
	store := testutil.NewFakeStore()
	svc := newProjectService(store)
	ctx := context.Background()

	p := draftProject()
	require.NoError(t, svc.CreateDraft(ctx, p))

	loaded, err := svc.Get(ctx, *p.StoreID)
	require.NoError(t, err)

	assert.Equal(t, p.Name, loaded.Name)
	assert.Equal(t, p.ApprovalYear, loaded.ApprovalYear)
	assert.True(t, loaded.BudgetAmount.Equal(p.BudgetAmount))
	assert.Equal(t, *p.ExpectedStart, *loaded.ExpectedStart)
	assert.Equal(t, *p.ExpectedEnd, *loaded.ExpectedEnd)
	assert.Equal(t, domain.StatusDraft, loaded.Status)
	require.NotNil(t, loaded.StoreID)
	assert.Equal(t, *p.StoreID, *loaded.StoreID)
}

func TestPepService_CatalogDedupesAndSorts(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Seed(liststore.CollectionPepCatalog, 1, liststore.Record{
		liststore.FieldTitle: "PEP-B", liststore.FieldAmountBRL: 200.0,
	})
	store.Seed(liststore.CollectionPepCatalog, 2, liststore.Record{
		liststore.FieldTitle: "PEP-A", liststore.FieldAmountBRL: 100.0,
	})
	store.Seed(liststore.CollectionPepCatalog, 3, liststore.Record{
		liststore.FieldTitle: "PEP-B", liststore.FieldAmountBRL: 999.0,
	})
	store.Seed(liststore.CollectionPepCatalog, 4, liststore.Record{
		liststore.FieldTitle: "", liststore.FieldAmountBRL: 1.0,
	})

	catalog, err := NewPepService(store).Catalog(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, catalog.Len())
	assert.Equal(t, "PEP-A", catalog.Elements()[0].Code)
	b, ok := catalog.Lookup("PEP-B")
	require.True(t, ok)
	assert.True(t, b.Amount.Equal(decimal.NewFromInt(200)), "first occurrence wins")
}
