// Package gantt projects the structure tree onto a flat timeline row set.
// The projection is stateless and read-only: it is recomputed after every
// tree mutation and is never a source of truth.
package gantt

import (
	"fmt"
	"time"

	"github.com/mvbarbosa/capex/internal/domain"
	"github.com/mvbarbosa/capex/internal/money"
)

// Row categories.
const (
	CategoryMilestone = "milestone"
	CategoryActivity  = "activity"
)

// Row is one timeline entry in the shape the rendering sink accepts.
type Row struct {
	ID              string
	Label           string
	Category        string
	Start           time.Time
	End             time.Time
	Duration        int // whole days
	PercentComplete float64
	ParentID        string
	Tooltip         string
}

// Project flattens the tree into rows: one summary row per milestone that
// has at least one dated activity, followed by a child row per activity.
// An activity with a start but no end is displayed as one day long; the
// tree itself is never touched.
func Project(tree *domain.StructureTree) []Row {
	var rows []Row

	for _, m := range tree.Milestones {
		var span []Row
		var minStart, maxEnd *time.Time

		for _, a := range m.Activities {
			if a.Start == nil {
				continue
			}
			start := *a.Start
			end := displayEnd(a)

			if minStart == nil || start.Before(*minStart) {
				minStart = &start
			}
			if maxEnd == nil || end.After(*maxEnd) {
				e := end
				maxEnd = &e
			}

			span = append(span, Row{
				ID:       a.ID,
				Label:    a.Title,
				Category: CategoryActivity,
				Start:    start,
				End:      end,
				Duration: days(start, end),
				ParentID: m.ID,
				Tooltip:  tooltip(a),
			})
		}

		if len(span) == 0 {
			continue
		}

		rows = append(rows, Row{
			ID:       m.ID,
			Label:    m.Name,
			Category: CategoryMilestone,
			Start:    *minStart,
			End:      *maxEnd,
			Duration: days(*minStart, *maxEnd),
		})
		rows = append(rows, span...)
	}

	return rows
}

// displayEnd returns the activity's end date, defaulting to start+1 day for
// display when no end has been set yet.
func displayEnd(a *domain.Activity) time.Time {
	if a.End != nil {
		return *a.End
	}
	return a.Start.AddDate(0, 0, 1)
}

func days(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

func tooltip(a *domain.Activity) string {
	s := fmt.Sprintf("Total %s", money.FormatBRL(a.TotalBudget()))
	if a.PepCode != "" {
		s += fmt.Sprintf(" · PEP %s", a.PepCode)
	}
	return s
}
