package formatter

import (
	"fmt"
	"strings"

	"github.com/mvbarbosa/capex/internal/validate"
)

// RenderViolations lists validation failures, highlighting the first one —
// the field the form should jump to.
func RenderViolations(result validate.Result) string {
	if result.OK {
		return StyleGreen.Render("All checks passed.") + "\n"
	}

	var b strings.Builder
	b.WriteString(StyleRed.Render(fmt.Sprintf("Cannot submit: %d problem(s) found", len(result.Violations))))
	b.WriteString("\n")
	for i, v := range result.Violations {
		marker := "  "
		line := v.Message
		if i == 0 {
			marker = StyleRed.Render("▸ ")
			line = Bold(line)
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", marker, line, Dim("("+v.Field+")")))
	}
	return b.String()
}
