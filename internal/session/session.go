// Package session holds the state of one form-filling session. The session
// object is created on start, passed explicitly to whatever needs it, and
// reset on "new project" — there are no package-level globals.
package session

import (
	"github.com/shopspring/decimal"

	"github.com/mvbarbosa/capex/internal/derive"
	"github.com/mvbarbosa/capex/internal/domain"
)

// Session owns the in-memory form state: the scalar project record, the
// structure tree, a catalog snapshot and the derived section visibility.
type Session struct {
	Project    *domain.Project
	Tree       *domain.StructureTree
	Catalog    *domain.Catalog
	Visibility derive.SectionVisibility
}

// New starts a blank session with the given catalog snapshot.
func New(catalog *domain.Catalog) *Session {
	return &Session{
		Project: &domain.Project{Status: domain.StatusDraft},
		Tree:    domain.NewStructureTree(),
		Catalog: catalog,
	}
}

// ApplyBudget records a new budget amount and re-derives section
// visibility. A section that just became hidden has its values cleared so
// no stale selection survives the tier change.
func (s *Session) ApplyBudget(amount decimal.Decimal) {
	s.Project.BudgetAmount = amount
	next := derive.Sections(amount)

	if s.Visibility.Milestones && !next.Milestones {
		s.Tree.Clear()
	}
	if s.Visibility.PepSelector && !next.PepSelector {
		s.Project.PepCode = ""
	}

	s.Visibility = next
}

// Load replaces the session contents with a project and tree fetched from
// the store, deriving visibility from the stored budget.
func (s *Session) Load(p *domain.Project, tree *domain.StructureTree) {
	s.Project = p
	s.Tree = tree
	s.Visibility = derive.Sections(p.BudgetAmount)
}

// Reset discards all form state for a fresh project, keeping the catalog.
func (s *Session) Reset() {
	s.Project = &domain.Project{Status: domain.StatusDraft}
	s.Tree = domain.NewStructureTree()
	s.Visibility = derive.SectionVisibility{}
}
