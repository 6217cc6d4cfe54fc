package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pydist/internal"
	"github.com/rios0rios0/pydist/internal/infrastructure/controllers"
)

func buildRootCommand(buildController *controllers.BuildController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "pydist [path]",
		Short: "Declarative builder for Python distribution packages",
		Long: `A declarative builder for Python distribution packages.

Reads a pydist.yaml descriptor configuration, scans the project for its
import packages and runtime requirements, generates setup.py from the
assembled package descriptor, and hands the project to a packaging
backend to produce sdist and wheel artifacts.

Usage modes:
  pydist .                 Build the project in the current directory
  pydist /path/to/project  Build a specific project
  pydist init new-project  Scaffold a new project`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if len(args) == 0 {
				return command.Help()
			}
			buildController.Execute(command, args)
			return nil
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be done without making changes")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	// The root command doubles as "build", so it carries the build flags.
	buildController.AddFlags(cmd)

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.MaximumNArgs(1),
			Run: func(command *cobra.Command, arguments []string) {
				ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		switch c := ctrl.(type) {
		case *controllers.BuildController:
			c.AddFlags(subCmd)
		case *controllers.InspectController:
			c.AddFlags(subCmd)
		case *controllers.OutdatedController:
			c.AddFlags(subCmd)
		case *controllers.ReleaseController:
			c.AddFlags(subCmd)
		case *controllers.InitController:
			c.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	buildController := injectBuildController()
	cobraRoot := buildRootCommand(buildController)

	// Add all subcommands
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'pydist': %s", err)
	}
}
