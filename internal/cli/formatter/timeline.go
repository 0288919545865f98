package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mvbarbosa/capex/internal/gantt"
)

const (
	barFill      = "█"
	summaryFill  = "▓"
	timelineCols = 60
)

// RenderTimeline draws the gantt rows as horizontal bars on a shared date
// axis: summary bars for milestones, solid bars for activities, each
// activity annotated with its tooltip.
func RenderTimeline(rows []gantt.Row) string {
	if len(rows) == 0 {
		return Dim("No dated activities yet.") + "\n"
	}

	axisStart, axisEnd := rows[0].Start, rows[0].End
	labelWidth := 0
	for _, r := range rows {
		if r.Start.Before(axisStart) {
			axisStart = r.Start
		}
		if r.End.After(axisEnd) {
			axisEnd = r.End
		}
		label := rowLabel(r)
		if w := lipgloss.Width(label); w > labelWidth {
			labelWidth = w
		}
	}

	span := axisEnd.Sub(axisStart)
	if span <= 0 {
		span = 24 * time.Hour
	}

	col := func(t time.Time) int {
		c := int(float64(timelineCols-1) * float64(t.Sub(axisStart)) / float64(span))
		if c < 0 {
			c = 0
		}
		if c > timelineCols-1 {
			c = timelineCols - 1
		}
		return c
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth+colGap))
	b.WriteString(Dim(fmt.Sprintf("%-*s%s", timelineCols-10, axisStart.Format("Jan 2006"), axisEnd.Format("Jan 2006"))))
	b.WriteString("\n")

	for _, r := range rows {
		label := rowLabel(r)
		pad := labelWidth - lipgloss.Width(label)
		b.WriteString(label)
		b.WriteString(strings.Repeat(" ", pad+colGap))

		from, to := col(r.Start), col(r.End)
		if to < from {
			to = from
		}
		bar := strings.Repeat(barFill, to-from+1)

		line := strings.Repeat(" ", from)
		if r.Category == gantt.CategoryMilestone {
			line += StyleHeader.Render(strings.Repeat(summaryFill, to-from+1))
		} else {
			line += StyleGreen.Render(bar)
		}
		b.WriteString(line)

		if r.Tooltip != "" {
			b.WriteString("  " + Dim(r.Tooltip))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func rowLabel(r gantt.Row) string {
	if r.Category == gantt.CategoryMilestone {
		return Bold(r.Label)
	}
	return "  " + StyleFg.Render(r.Label)
}
