package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pydist/internal/domain/commands"
	"github.com/rios0rios0/pydist/internal/domain/entities"
)

// InspectController handles the "inspect" subcommand.
type InspectController struct {
	command commands.Inspect
}

// NewInspectController creates a new InspectController.
func NewInspectController(command commands.Inspect) *InspectController {
	return &InspectController{command: command}
}

// GetBind returns the Cobra command metadata for the inspect controller.
func (it *InspectController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "inspect [path]",
		Short: "Print the assembled package descriptor",
		Long: `Assemble the package descriptor for a project and print it.

The default view is YAML; --render prints the setup.py that a build
would generate instead.`,
	}
}

// Execute prints the descriptor for the given project directory.
func (it *InspectController) Execute(cmd *cobra.Command, args []string) {
	render, _ := cmd.Flags().GetBool("render")

	projectDir := projectDirFromArgs(args)

	settings, _, err := loadSettings(cmd, projectDir)
	if err != nil {
		logger.Fatalf("Inspect failed: %v", err)
	}

	out, inspectErr := it.command.Execute(projectDir, settings, commands.InspectOptions{
		RenderScript: render,
	})
	if inspectErr != nil {
		logger.Fatalf("Inspect failed: %v", inspectErr)
	}

	fmt.Print(out)
}

// AddFlags adds the inspect-specific flags to the given Cobra command.
func (it *InspectController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("render", false, "Print the generated setup.py instead of the YAML view")
}
