package service

import (
	"context"
	"fmt"

	"github.com/mvbarbosa/capex/internal/derive"
	"github.com/mvbarbosa/capex/internal/domain"
	"github.com/mvbarbosa/capex/internal/liststore"
	"github.com/mvbarbosa/capex/internal/validate"
)

type projectService struct {
	store     liststore.Client
	structure StructureService
	validator *validate.Validator
}

// NewProjectService creates the project record service. The validator is
// injectable so tests can pin the clock.
func NewProjectService(store liststore.Client, structure StructureService, validator *validate.Validator) ProjectService {
	if validator == nil {
		validator = validate.New()
	}
	return &projectService{store: store, structure: structure, validator: validator}
}

func (s *projectService) CreateDraft(ctx context.Context, p *domain.Project) error {
	p.Status = domain.StatusDraft
	id, err := s.store.Create(ctx, liststore.CollectionProjects, projectFields(p))
	if err != nil {
		return fmt.Errorf("creating project draft: %w", err)
	}
	p.StoreID = &id
	return nil
}

func (s *projectService) UpdateDraft(ctx context.Context, p *domain.Project) error {
	if !p.Persisted() {
		return ErrNotPersisted
	}
	p.Status = domain.StatusDraft
	if err := s.store.Update(ctx, liststore.CollectionProjects, *p.StoreID, projectFields(p)); err != nil {
		return fmt.Errorf("updating project draft: %w", err)
	}
	return nil
}

// Submit runs the full validation gate. On any violation nothing is sent to
// the store. On success the project is written with submitted status and the
// structure tree is saved. The save always runs: a tree emptied by a tier
// downgrade must still clear the rows a previous save left behind.
func (s *projectService) Submit(ctx context.Context, p *domain.Project, tree *domain.StructureTree, vis derive.SectionVisibility) (*SubmitOutcome, error) {
	result := s.validator.Validate(p, tree, vis)
	if !result.OK {
		return &SubmitOutcome{Validation: result}, nil
	}

	if !p.Persisted() {
		if err := s.CreateDraft(ctx, p); err != nil {
			return nil, err
		}
	}

	p.Status = domain.StatusSubmitted
	if err := s.store.Update(ctx, liststore.CollectionProjects, *p.StoreID, projectFields(p)); err != nil {
		p.Status = domain.StatusDraft
		return nil, fmt.Errorf("submitting project: %w", err)
	}

	if err := s.structure.Save(ctx, tree, *p.StoreID, p.ApprovalYear); err != nil {
		return nil, err
	}

	return &SubmitOutcome{Validation: result, Submitted: true}, nil
}

func (s *projectService) Get(ctx context.Context, id int) (*domain.Project, error) {
	record, err := s.store.GetByID(ctx, liststore.CollectionProjects, id)
	if err != nil {
		return nil, fmt.Errorf("loading project %d: %w", id, err)
	}
	return projectFromRecord(record), nil
}
