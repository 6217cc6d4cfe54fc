package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pydist/internal/domain/commands"
	"github.com/rios0rios0/pydist/internal/domain/entities"
)

// BuildController handles the "build" subcommand, also reachable as the
// root command with a path argument.
type BuildController struct {
	command commands.Build
}

// NewBuildController creates a new BuildController.
func NewBuildController(command commands.Build) *BuildController {
	return &BuildController{command: command}
}

// GetBind returns the Cobra command metadata for the build controller.
func (it *BuildController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "build [path]",
		Short: "Build distribution artifacts for a project",
		Long: `Build sdist and wheel artifacts for a Python project.

Assembles the package descriptor from the configuration, the dependency
manifest and the discovered import packages, generates setup.py from it,
and hands the project to the configured packaging backend.`,
	}
}

// Execute runs a build for the given project directory.
func (it *BuildController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	force, _ := cmd.Flags().GetBool("force")
	backend, _ := cmd.Flags().GetString("backend")
	output, _ := cmd.Flags().GetString("output")
	python, _ := cmd.Flags().GetString("python")

	projectDir := projectDirFromArgs(args)

	settings, _, err := loadSettings(cmd, projectDir)
	if err != nil {
		logger.Fatalf("Build failed: %v", err)
	}

	if buildErr := it.command.Execute(ctx, projectDir, settings, commands.BuildOptions{
		DryRun:  dryRun,
		Verbose: verbose,
		Force:   force,
		Backend: backend,
		Output:  output,
		Python:  python,
	}); buildErr != nil {
		logger.Fatalf("Build failed: %v", buildErr)
	}
}

// AddFlags adds the build-specific flags to the given Cobra command.
func (it *BuildController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("force", false, "Overwrite an existing setup.py")
	cmd.Flags().String("backend", "", "Build backend to use (pep517, setuptools)")
	cmd.Flags().String("output", "", "Directory to place the built artifacts in")
	cmd.Flags().String("python", "", "Python interpreter to run the backend with")
}
