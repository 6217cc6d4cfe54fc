package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pydist/internal/domain/commands"
	"github.com/rios0rios0/pydist/internal/domain/entities"
)

// ReleaseController handles the "release" subcommand.
type ReleaseController struct {
	command commands.Release
}

// NewReleaseController creates a new ReleaseController.
func NewReleaseController(command commands.Release) *ReleaseController {
	return &ReleaseController{command: command}
}

// GetBind returns the Cobra command metadata for the release controller.
func (it *ReleaseController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "release [path]",
		Short: "Cut a release: bump the version and promote the changelog",
		Long: `Cut a release for the project.

Sets package.version in the config file to the next version (from --version
or --bump), inserts a release note into the changelog, and promotes its
[Unreleased] section to the released version. With --pr the edits are pushed
as a branch and opened as a pull request instead of written locally.`,
	}
}

// Execute cuts a release for the given project directory.
func (it *ReleaseController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	version, _ := cmd.Flags().GetString("version")
	bump, _ := cmd.Flags().GetString("bump")
	createPR, _ := cmd.Flags().GetBool("pr")
	token, _ := cmd.Flags().GetString("token")

	projectDir := projectDirFromArgs(args)

	settings, configPath, err := loadSettings(cmd, projectDir)
	if err != nil {
		logger.Fatalf("Release failed: %v", err)
	}

	if releaseErr := it.command.Execute(ctx, projectDir, settings, commands.ReleaseOptions{
		Version:    version,
		Bump:       bump,
		DryRun:     dryRun,
		CreatePR:   createPR,
		Token:      token,
		ConfigPath: configPath,
	}); releaseErr != nil {
		logger.Fatalf("Release failed: %v", releaseErr)
	}
}

// AddFlags adds the release-specific flags to the given Cobra command.
func (it *ReleaseController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("version", "", "Exact version to release")
	cmd.Flags().String("bump", "", "Version segment to bump (major, minor, patch)")
	cmd.Flags().Bool("pr", false, "Open a pull request with the release edits instead of writing them locally")
	cmd.Flags().String("token", "", "Auth token for the git hosting provider (used with --pr)")
}
