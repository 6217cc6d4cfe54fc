package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pydist/internal/domain/commands"
	"github.com/rios0rios0/pydist/internal/domain/entities"
)

// OutdatedController handles the "outdated" subcommand.
type OutdatedController struct {
	command commands.Outdated
}

// NewOutdatedController creates a new OutdatedController.
func NewOutdatedController(command commands.Outdated) *OutdatedController {
	return &OutdatedController{command: command}
}

// GetBind returns the Cobra command metadata for the outdated controller.
func (it *OutdatedController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "outdated [path]",
		Short: "Report pinned requirements that lag behind the package index",
		Long: `Check every ==-pinned requirement of the dependency manifest against
the package index and report the ones with a newer release.

Works without a config file; the default manifest is requirements.txt.`,
	}
}

// Execute reports the freshness of the project's pinned requirements.
func (it *OutdatedController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	failOnOutdated, _ := cmd.Flags().GetBool("fail")

	projectDir := projectDirFromArgs(args)

	settings, err := loadSettingsOrDefault(cmd, projectDir)
	if err != nil {
		logger.Fatalf("Outdated check failed: %v", err)
	}

	if outdatedErr := it.command.Execute(ctx, projectDir, settings, commands.OutdatedOptions{
		FailOnOutdated: failOnOutdated,
	}); outdatedErr != nil {
		logger.Fatalf("Outdated check failed: %v", outdatedErr)
	}
}

// AddFlags adds the outdated-specific flags to the given Cobra command.
func (it *OutdatedController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("fail", false, "Exit non-zero when any requirement is outdated")
}
