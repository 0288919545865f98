package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvbarbosa/capex/internal/cli/formatter"
)

// newDraftCmd saves a stored proposal back as a draft without running the
// submission gate. Useful to pull a submitted proposal back for editing.
func newDraftCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "draft <project-id>",
		Short: "Save a proposal as a draft, skipping submission checks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProjectID(args)
			if err != nil {
				return err
			}
			ctx := context.Background()

			p, err := app.Projects.Get(ctx, id)
			if err != nil {
				return err
			}
			if err := app.Projects.UpdateDraft(ctx, p); err != nil {
				return err
			}

			fmt.Printf("%s  project #%d %q is a draft again\n",
				formatter.StatusIndicator(p.Status), id, p.Name)
			return nil
		},
	}
}
