package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvbarbosa/capex/internal/cli/formatter"
	"github.com/mvbarbosa/capex/internal/money"
)

func newPepsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "peps",
		Short: "List the available PEP budget elements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := app.Peps.Catalog(context.Background())
			if err != nil {
				return err
			}
			if catalog.Len() == 0 {
				fmt.Println("No PEP elements available.")
				return nil
			}

			rows := make([][]string, 0, catalog.Len())
			for _, p := range catalog.Elements() {
				rows = append(rows, []string{p.Code, money.FormatBRL(p.Amount)})
			}
			fmt.Print(formatter.RenderTable([]string{"CODE", "AMOUNT"}, rows))
			return nil
		},
	}
}
