package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvbarbosa/capex/internal/cli/formatter"
)

func newSubmitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <project-id>",
		Short: "Validate a stored draft and submit it for approval",
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

			outcome, err := app.Projects.Submit(ctx, s.Project, s.Tree, s.Visibility)
			if err != nil {
				return err
			}

			fmt.Print(formatter.RenderViolations(outcome.Validation))
			if !outcome.Submitted {
				return fmt.Errorf("project #%d was not submitted", id)
			}

			fmt.Printf("%s  project #%d submitted\n",
				formatter.StatusIndicator(s.Project.Status), id)
			return nil
		},
	}
}
