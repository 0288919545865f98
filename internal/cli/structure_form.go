package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/mvbarbosa/capex/internal/cli/formatter"
	"github.com/mvbarbosa/capex/internal/domain"
	"github.com/mvbarbosa/capex/internal/gantt"
	"github.com/mvbarbosa/capex/internal/money"
	"github.com/mvbarbosa/capex/internal/session"
)

// runStructureEditor loops an action menu over the milestone tree until the
// user is done. Only offered when the milestone section is visible.
func runStructureEditor(s *session.Session, out func(string)) error {
	for {
		action := ""
		err := runForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Structure (%d milestone(s), total %s)",
					len(s.Tree.Milestones), money.FormatBRL(s.Tree.TotalBudget()))).
				Options(
					huh.NewOption("Add milestone", "add-milestone"),
					huh.NewOption("Add activity", "add-activity"),
					huh.NewOption("Edit activity", "edit-activity"),
					huh.NewOption("Remove milestone", "remove-milestone"),
					huh.NewOption("Remove activity", "remove-activity"),
					huh.NewOption("Show timeline", "timeline"),
					huh.NewOption("Done", "done"),
				).
				Value(&action),
		))
		if err != nil {
			return err
		}

		switch action {
		case "add-milestone":
			err = addMilestone(s)
		case "add-activity":
			err = addActivity(s)
		case "edit-activity":
			err = editActivity(s)
		case "remove-milestone":
			err = removeMilestone(s)
		case "remove-activity":
			err = removeActivity(s)
		case "timeline":
			out(formatter.RenderTimeline(gantt.Project(s.Tree)))
		case "done":
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func addMilestone(s *session.Session) error {
	name := ""
	err := runForm(huh.NewGroup(
		huh.NewInput().Title("Milestone name (blank for default)").Value(&name),
	))
	if err != nil {
		return err
	}
	s.Tree.AddMilestone(name)
	return nil
}

func selectMilestone(s *session.Session, title string) (*domain.Milestone, error) {
	if s.Tree.Empty() {
		return nil, nil
	}
	options := make([]huh.Option[string], 0, len(s.Tree.Milestones))
	for _, m := range s.Tree.Milestones {
		options = append(options, huh.NewOption(m.Name, m.ID))
	}

	id := ""
	err := runForm(huh.NewGroup(
		huh.NewSelect[string]().Title(title).Options(options...).Value(&id),
	))
	if err != nil {
		return nil, err
	}
	return s.Tree.Milestone(id), nil
}

func selectActivity(s *session.Session, m *domain.Milestone, title string) (*domain.Activity, error) {
	if m == nil || len(m.Activities) == 0 {
		return nil, nil
	}
	options := make([]huh.Option[string], 0, len(m.Activities))
	for i, a := range m.Activities {
		label := a.Title
		if label == "" {
			label = fmt.Sprintf("(untitled activity %d)", i+1)
		}
		options = append(options, huh.NewOption(label, a.ID))
	}

	id := ""
	err := runForm(huh.NewGroup(
		huh.NewSelect[string]().Title(title).Options(options...).Value(&id),
	))
	if err != nil {
		return nil, err
	}
	return s.Tree.Activity(id), nil
}

func addActivity(s *session.Session) error {
	m, err := selectMilestone(s, "Add activity to which milestone?")
	if err != nil || m == nil {
		return err
	}
	a := s.Tree.AddActivity(m.ID)
	return editActivityFields(s, a)
}

func editActivity(s *session.Session) error {
	m, err := selectMilestone(s, "Which milestone?")
	if err != nil || m == nil {
		return err
	}
	a, err := selectActivity(s, m, "Which activity?")
	if err != nil || a == nil {
		return err
	}
	return editActivityFields(s, a)
}

// editActivityFields collects the activity scalars, derives the year lines
// from the dates, then collects an amount per derived year.
func editActivityFields(s *session.Session, a *domain.Activity) error {
	title := a.Title
	description := a.Description
	start, end := "", ""
	if a.Start != nil {
		start = money.FormatDate(*a.Start)
	}
	if a.End != nil {
		end = money.FormatDate(*a.End)
	}

	pepOptions := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, p := range s.Catalog.Elements() {
		pepOptions = append(pepOptions, huh.NewOption(p.Code+" — "+money.FormatBRL(p.Amount), p.Code))
	}
	pep := a.PepCode

	err := runForm(huh.NewGroup(
		huh.NewInput().Title("Activity title").Value(&title),
		huh.NewText().Title("Description").Value(&description),
		dateInput("Start (YYYY-MM-DD)", &start, true),
		dateInput("End (YYYY-MM-DD)", &end, true),
		huh.NewSelect[string]().Title("PEP element").Options(pepOptions...).Value(&pep),
	))
	if err != nil {
		return err
	}

	a.Title = title
	a.Description = description
	s.Tree.SetActivityPep(a.ID, pep)

	var startT, endT *time.Time
	if t, err := money.ParseDate(start); err == nil {
		startT = &t
	}
	if t, err := money.ParseDate(end); err == nil {
		endT = &t
	}
	s.Tree.SetActivityDates(a.ID, startT, endT)

	return editYearAmounts(s, a)
}

// editYearAmounts renders one amount input per derived fiscal year.
func editYearAmounts(s *session.Session, a *domain.Activity) error {
	if len(a.Years) == 0 {
		return nil
	}

	buffers := make([]string, len(a.Years))
	fields := make([]huh.Field, 0, len(a.Years))
	for i, line := range a.Years {
		if !line.Amount.IsZero() {
			buffers[i] = line.Amount.String()
		}
		fields = append(fields, amountInput(fmt.Sprintf("Budget %d (R$)", line.Year), &buffers[i]))
	}

	if err := runForm(huh.NewGroup(fields...)); err != nil {
		return err
	}

	for i, line := range a.Years {
		s.Tree.SetYearAmount(a.ID, line.Year, money.ParseBRLOrZero(buffers[i]))
	}
	return nil
}

func removeMilestone(s *session.Session) error {
	m, err := selectMilestone(s, "Remove which milestone?")
	if err != nil || m == nil {
		return err
	}
	s.Tree.RemoveMilestone(m.ID)
	return nil
}

func removeActivity(s *session.Session) error {
	m, err := selectMilestone(s, "From which milestone?")
	if err != nil || m == nil {
		return err
	}
	a, err := selectActivity(s, m, "Remove which activity?")
	if err != nil || a == nil {
		return err
	}
	s.Tree.RemoveActivity(m.ID, a.ID)
	return nil
}
