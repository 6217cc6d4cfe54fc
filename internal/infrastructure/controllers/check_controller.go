package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pydist/internal/domain/commands"
	"github.com/rios0rios0/pydist/internal/domain/entities"
)

// CheckController handles the "check" subcommand.
type CheckController struct {
	command commands.Check
}

// NewCheckController creates a new CheckController.
func NewCheckController(command commands.Check) *CheckController {
	return &CheckController{command: command}
}

// GetBind returns the Cobra command metadata for the check controller.
func (it *CheckController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "check [path]",
		Short: "Validate the project configuration and metadata",
		Long: `Assemble the package descriptor and validate it without building.

Hard rule violations (bad distribution name, missing version, malformed
author email) fail the command; softer findings are logged as warnings,
including drift between the configuration and an existing pyproject.toml.`,
	}
}

// Execute validates the given project directory.
func (it *CheckController) Execute(cmd *cobra.Command, args []string) {
	projectDir := projectDirFromArgs(args)

	settings, _, err := loadSettings(cmd, projectDir)
	if err != nil {
		logger.Fatalf("Check failed: %v", err)
	}

	if checkErr := it.command.Execute(projectDir, settings); checkErr != nil {
		logger.Fatalf("Check failed: %v", checkErr)
	}
}
