package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvbarbosa/capex/internal/cli/formatter"
	"github.com/mvbarbosa/capex/internal/money"
	"github.com/mvbarbosa/capex/internal/validate"
)

func newStatusCmd(app *App) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "status <project-id>",
		Short: "Show a stored proposal's fields and readiness",
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
			p := s.Project

			fmt.Printf("%s  #%d %s\n\n", formatter.StatusIndicator(p.Status), id, formatter.Bold(p.Name))

			rows := [][]string{
				{"Sponsoring area", p.SponsorArea},
				{"Sponsor", p.Sponsor},
				{"Requester", p.Requester},
				{"Cost center", p.CostCenter},
				{"Investment type", p.InvestmentType},
				{"Category", p.Category},
				{"Approval year", fmt.Sprintf("%d", p.ApprovalYear)},
				{"Budget", money.FormatBRL(p.BudgetAmount)},
			}
			if p.ExpectedStart != nil {
				rows = append(rows, []string{"Expected start", money.FormatDateDisplay(*p.ExpectedStart)})
			}
			if p.ExpectedEnd != nil {
				rows = append(rows, []string{"Expected end", money.FormatDateDisplay(*p.ExpectedEnd)})
			}
			if s.Visibility.Milestones {
				rows = append(rows,
					[]string{"Milestones", fmt.Sprintf("%d", len(s.Tree.Milestones))},
					[]string{"Structure total", money.FormatBRL(s.Tree.TotalBudget())},
				)
			}
			if s.Visibility.PepSelector && p.PepCode != "" {
				rows = append(rows, []string{"PEP element", p.PepCode})
			}
			fmt.Print(formatter.RenderTable([]string{"FIELD", "VALUE"}, rows))

			if check {
				fmt.Println()
				result := validate.New().Validate(p, s.Tree, s.Visibility)
				fmt.Print(formatter.RenderViolations(result))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Run submission checks without submitting")

	return cmd
}
