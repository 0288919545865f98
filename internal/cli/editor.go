package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mvbarbosa/capex/internal/cli/formatter"
	"github.com/mvbarbosa/capex/internal/derive"
	"github.com/mvbarbosa/capex/internal/domain"
	"github.com/mvbarbosa/capex/internal/session"
)

// requireInteractive guards commands that open huh forms.
func requireInteractive(app *App) error {
	if app.IsInteractive == nil || !app.IsInteractive() {
		return fmt.Errorf("this command needs an interactive terminal")
	}
	return nil
}

// parseProjectID parses the positional store id argument.
func parseProjectID(args []string) (int, error) {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid project id %q", args[0])
	}
	return id, nil
}

// newSession loads the PEP catalog and starts a fresh session. The catalog
// is read once per command invocation; a stale snapshot only means a code
// appears or disappears on the next run.
func newSession(ctx context.Context, app *App) (*session.Session, error) {
	catalog, err := app.Peps.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading PEP catalog: %w", err)
	}
	return session.New(catalog), nil
}

// runEditor walks the session through the project form and whichever
// structure section the budget tier makes visible.
func runEditor(s *session.Session) error {
	if err := runProjectForm(s); err != nil {
		return err
	}
	if s.Visibility.Milestones {
		return runStructureEditor(s, func(text string) { fmt.Println(text) })
	}
	return runPepSelect(s)
}

// saveDraft persists the project record and the structure tree. The tree is
// always saved, even when empty: a budget drop below the threshold clears
// the session tree and the save must clear the stored rows to match.
func saveDraft(ctx context.Context, app *App, s *session.Session) error {
	p := s.Project
	if p.Persisted() {
		if err := app.Projects.UpdateDraft(ctx, p); err != nil {
			return err
		}
	} else {
		if err := app.Projects.CreateDraft(ctx, p); err != nil {
			return err
		}
	}

	return app.Structure.Save(ctx, s.Tree, *p.StoreID, p.ApprovalYear)
}

// loadSession fetches a stored project and its tree into a fresh session.
func loadSession(ctx context.Context, app *App, id int) (*session.Session, error) {
	s, err := newSession(ctx, app)
	if err != nil {
		return nil, err
	}

	p, err := app.Projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	tree := domain.NewStructureTree()
	if derivedMilestones(p) {
		tree, err = app.Structure.Load(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	s.Load(p, tree)
	return s, nil
}

func derivedMilestones(p *domain.Project) bool {
	return derive.Sections(p.BudgetAmount).Milestones
}

func printSaved(s *session.Session) {
	p := s.Project
	fmt.Printf("%s  project #%d %q saved as draft\n",
		formatter.StatusIndicator(p.Status), *p.StoreID, p.Name)
}
