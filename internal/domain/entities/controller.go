package entities

import (
	"github.com/spf13/cobra"
)

// ControllerBind holds the Cobra metadata a controller exposes.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is one CLI subcommand handler.
type Controller interface {
	// GetBind returns the Cobra command metadata for this controller.
	GetBind() ControllerBind

	// Execute runs the controller with the parsed command and arguments.
	Execute(cmd *cobra.Command, args []string)
}
