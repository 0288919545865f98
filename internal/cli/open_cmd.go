package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <project-id>",
		Short: "Reopen a stored proposal and continue editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireInteractive(app); err != nil {
				return err
			}
			id, err := parseProjectID(args)
			if err != nil {
				return err
			}
			ctx := context.Background()

			s, err := loadSession(ctx, app, id)
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
