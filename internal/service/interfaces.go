package service

import (
	"context"

	"github.com/mvbarbosa/capex/internal/derive"
	"github.com/mvbarbosa/capex/internal/domain"
	"github.com/mvbarbosa/capex/internal/validate"
)

// StructureService persists the milestone tree with the store's flattened
// foreign-key representation.
type StructureService interface {
	// Save replaces the project's stored structure with the tree:
	// destroy phase leaf-to-root, then rebuild in tree order. The tree is
	// borrowed read-only. Only one save per project may be in flight.
	Save(ctx context.Context, tree *domain.StructureTree, projectID, approvalYear int) error

	// Load reconstructs the tree from the flattened collections in
	// store-id order.
	Load(ctx context.Context, projectID int) (*domain.StructureTree, error)
}

// SubmitOutcome reports what Submit did: either a validation failure (the
// store untouched) or a successful submission.
type SubmitOutcome struct {
	Validation validate.Result
	Submitted  bool
}

// ProjectService manages the scalar project record.
type ProjectService interface {
	// CreateDraft writes a new project with draft status and assigns its
	// store identity. Drafts skip validation.
	CreateDraft(ctx context.Context, p *domain.Project) error

	// UpdateDraft rewrites an existing project's fields, still as a draft.
	UpdateDraft(ctx context.Context, p *domain.Project) error

	// Submit validates the full form and tree; on success it writes the
	// project with submitted status and saves the structure.
	Submit(ctx context.Context, p *domain.Project, tree *domain.StructureTree, vis derive.SectionVisibility) (*SubmitOutcome, error)

	// Get loads a project by store id.
	Get(ctx context.Context, id int) (*domain.Project, error)
}

// PepService reads the external budget-element catalog.
type PepService interface {
	Catalog(ctx context.Context) (*domain.Catalog, error)
}
