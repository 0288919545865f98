// Package cli wires the cobra command surface of the capex binary.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mvbarbosa/capex/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects  service.ProjectService
	Structure service.StructureService
	Peps      service.PepService

	// IsInteractive reports whether stdin is a terminal; the form wizard
	// refuses to start without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "capex" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "capex",
		Short: "CAPEX project proposal entry and submission",
	}

	root.AddCommand(
		newNewCmd(app),
		newOpenCmd(app),
		newDraftCmd(app),
		newSubmitCmd(app),
		newTimelineCmd(app),
		newPepsCmd(app),
		newStatusCmd(app),
	)

	return root
}
