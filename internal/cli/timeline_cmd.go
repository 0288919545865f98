package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvbarbosa/capex/internal/cli/formatter"
	"github.com/mvbarbosa/capex/internal/gantt"
)

func newTimelineCmd(app *App) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "timeline <project-id>",
		Short: "Render a project's milestone and activity timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProjectID(args)
			if err != nil {
				return err
			}
			ctx := context.Background()

			s, err := loadSession(ctx, app, id)
			if err != nil {
				return err
			}

			rendered := formatter.RenderTimeline(gantt.Project(s.Tree))
			if interactive {
				if err := requireInteractive(app); err != nil {
					return err
				}
				title := fmt.Sprintf("Timeline · #%d %s", id, s.Project.Name)
				return runTimelinePager(title, rendered)
			}

			fmt.Print(rendered)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Open the timeline in a scrollable pager")

	return cmd
}
