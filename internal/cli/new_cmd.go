package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create a new project proposal with the guided form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireInteractive(app); err != nil {
				return err
			}
			ctx := context.Background()

			s, err := newSession(ctx, app)
			if err != nil {
				return err
			}
			if err := runEditor(s); err != nil {
				return err
			}
			if err := saveDraft(ctx, app, s); err != nil {
				return err
			}

			printSaved(s)
			return nil
		},
	}
}
