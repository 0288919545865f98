package service

import (
	"context"
	"fmt"

	"github.com/mvbarbosa/capex/internal/domain"
	"github.com/mvbarbosa/capex/internal/liststore"
)

type pepService struct {
	store liststore.Client
}

// NewPepService creates the read-only catalog service.
func NewPepService(store liststore.Client) PepService {
	return &pepService{store: store}
}

func (s *pepService) Catalog(ctx context.Context) (*domain.Catalog, error) {
	records, err := s.store.Query(ctx, liststore.CollectionPepCatalog, liststore.Query{
		Select: []string{liststore.FieldTitle, liststore.FieldAmountBRL},
	})
	if err != nil {
		return nil, fmt.Errorf("loading PEP catalog: %w", err)
	}

	elements := make([]domain.PEP, 0, len(records))
	for _, r := range records {
		code := r.StringField(liststore.FieldTitle)
		if code == "" {
			continue
		}
		elements = append(elements, domain.PEP{
			Code:   code,
			Amount: r.DecimalField(liststore.FieldAmountBRL),
		})
	}

	return domain.NewCatalog(elements), nil
}
