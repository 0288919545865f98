package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/mvbarbosa/capex/internal/domain"
	"github.com/mvbarbosa/capex/internal/liststore"
	"github.com/mvbarbosa/capex/internal/money"
)

type structureService struct {
	store liststore.Client

	mu       sync.Mutex
	inFlight map[int]bool
}

// NewStructureService creates the persistence orchestrator for the
// milestone tree.
func NewStructureService(store liststore.Client) StructureService {
	return &structureService{
		store:    store,
		inFlight: make(map[int]bool),
	}
}

func (s *structureService) acquire(projectID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[projectID] {
		return ErrSaveInFlight
	}
	s.inFlight[projectID] = true
	return nil
}

func (s *structureService) release(projectID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, projectID)
}

// Save is a full replace: the stored structure is destroyed leaf-to-root,
// then rebuilt from the tree in order. The orchestrator is the sole writer
// of the three child collections, so no diffing is needed. A failure during
// rebuild leaves the store partially rebuilt; the caller must surface that
// and let the user re-save.
func (s *structureService) Save(ctx context.Context, tree *domain.StructureTree, projectID, approvalYear int) error {
	if projectID <= 0 {
		return ErrNotPersisted
	}
	if err := s.acquire(projectID); err != nil {
		return err
	}
	defer s.release(projectID)

	if err := s.destroy(ctx, projectID); err != nil {
		return fmt.Errorf("clearing stored structure: %w", err)
	}
	if err := s.rebuild(ctx, tree, projectID, approvalYear); err != nil {
		return fmt.Errorf("rebuilding structure (store may be partially saved, save again): %w", err)
	}
	return nil
}

// destroy deletes budget lines, then activities, then milestones. The store
// does not cascade, so the leaf-before-parent order is load-bearing.
func (s *structureService) destroy(ctx context.Context, projectID int) error {
	milestones, err := s.store.Query(ctx, liststore.CollectionMilestones, liststore.Query{
		Select: []string{liststore.FieldID},
		Filter: fmt.Sprintf("%s eq %d", liststore.FieldProjectID, projectID),
	})
	if err != nil {
		return err
	}

	for _, m := range milestones {
		activities, err := s.store.Query(ctx, liststore.CollectionActivities, liststore.Query{
			Select: []string{liststore.FieldID},
			Filter: fmt.Sprintf("%s eq %d", liststore.FieldMilestoneID, m.ID()),
		})
		if err != nil {
			return err
		}

		for _, a := range activities {
			lines, err := s.store.Query(ctx, liststore.CollectionBudget, liststore.Query{
				Select: []string{liststore.FieldID},
				Filter: fmt.Sprintf("%s eq %d", liststore.FieldActivityID, a.ID()),
			})
			if err != nil {
				return err
			}
			for _, l := range lines {
				if err := s.store.Delete(ctx, liststore.CollectionBudget, l.ID()); err != nil {
					return err
				}
			}
			if err := s.store.Delete(ctx, liststore.CollectionActivities, a.ID()); err != nil {
				return err
			}
		}

		if err := s.store.Delete(ctx, liststore.CollectionMilestones, m.ID()); err != nil {
			return err
		}
	}

	return nil
}

// rebuild creates milestones, activities and budget lines in tree order,
// sequentially: each create must return its id before dependent children
// are written.
func (s *structureService) rebuild(ctx context.Context, tree *domain.StructureTree, projectID, approvalYear int) error {
	for _, m := range tree.Milestones {
		milestoneID, err := s.store.Create(ctx, liststore.CollectionMilestones, liststore.Record{
			liststore.FieldTitle:     m.Name,
			liststore.FieldProjectID: projectID,
		})
		if err != nil {
			return fmt.Errorf("creating milestone %q: %w", m.Name, err)
		}

		for _, a := range m.Activities {
			fields := liststore.Record{
				liststore.FieldTitle:       a.Title,
				liststore.FieldMilestoneID: milestoneID,
				liststore.FieldProjectID:   projectID,
				liststore.FieldDescription: a.Description,
			}
			if a.Start != nil {
				fields[liststore.FieldStartDate] = money.FormatDate(*a.Start)
			}
			if a.End != nil {
				fields[liststore.FieldEndDate] = money.FormatDate(*a.End)
			}

			activityID, err := s.store.Create(ctx, liststore.CollectionActivities, fields)
			if err != nil {
				return fmt.Errorf("creating activity %q: %w", a.Title, err)
			}

			title := a.PepCode
			if title == "" {
				title = a.Title
			}
			for _, line := range a.Years {
				year := line.Year
				if approvalYear > 0 {
					year = approvalYear
				}
				_, err := s.store.Create(ctx, liststore.CollectionBudget, liststore.Record{
					liststore.FieldActivityID: activityID,
					liststore.FieldProjectID:  projectID,
					liststore.FieldYear:       year,
					liststore.FieldAmountBRL:  line.Amount,
					liststore.FieldTitle:      title,
				})
				if err != nil {
					return fmt.Errorf("creating budget line %d of %q: %w", line.Year, a.Title, err)
				}
			}
		}
	}

	return nil
}

// Load inverts the flattening: budget lines regrouped by activity,
// activities by milestone, everything in store-id order.
func (s *structureService) Load(ctx context.Context, projectID int) (*domain.StructureTree, error) {
	tree := domain.NewStructureTree()

	milestones, err := s.store.Query(ctx, liststore.CollectionMilestones, liststore.Query{
		Select: []string{liststore.FieldID, liststore.FieldTitle},
		Filter: fmt.Sprintf("%s eq %d", liststore.FieldProjectID, projectID),
	})
	if err != nil {
		return nil, fmt.Errorf("loading milestones: %w", err)
	}

	for _, mr := range milestones {
		m := tree.AddMilestone(mr.StringField(liststore.FieldTitle))
		m.StoreID = mr.ID()

		activities, err := s.store.Query(ctx, liststore.CollectionActivities, liststore.Query{
			Filter: fmt.Sprintf("%s eq %d", liststore.FieldMilestoneID, mr.ID()),
		})
		if err != nil {
			return nil, fmt.Errorf("loading activities of milestone %d: %w", mr.ID(), err)
		}

		for _, ar := range activities {
			a := tree.AddActivity(m.ID)
			a.StoreID = ar.ID()
			a.Title = ar.StringField(liststore.FieldTitle)
			a.Description = ar.StringField(liststore.FieldDescription)
			if v := ar.StringField(liststore.FieldStartDate); v != "" {
				if t, err := money.ParseDate(v); err == nil {
					a.Start = &t
				}
			}
			if v := ar.StringField(liststore.FieldEndDate); v != "" {
				if t, err := money.ParseDate(v); err == nil {
					a.End = &t
				}
			}

			lines, err := s.store.Query(ctx, liststore.CollectionBudget, liststore.Query{
				Filter: fmt.Sprintf("%s eq %d", liststore.FieldActivityID, ar.ID()),
			})
			if err != nil {
				return nil, fmt.Errorf("loading budget lines of activity %d: %w", ar.ID(), err)
			}
			for _, lr := range lines {
				a.Years = append(a.Years, domain.YearLine{
					Year:   lr.IntField(liststore.FieldYear),
					Amount: lr.DecimalField(liststore.FieldAmountBRL),
				})
				// The budget-line title is the PEP code when one was
				// selected; an activity-title fallback is not a code.
				if code := lr.StringField(liststore.FieldTitle); code != "" && code != a.Title {
					a.PepCode = code
				}
			}
		}
	}

	return tree, nil
}
