package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pydist/internal/domain/commands"
	"github.com/rios0rios0/pydist/internal/domain/entities"
)

// InitController handles the "init" subcommand.
type InitController struct {
	command commands.Init
}

// NewInitController creates a new InitController.
func NewInitController(command commands.Init) *InitController {
	return &InitController{command: command}
}

// GetBind returns the Cobra command metadata for the init controller.
func (it *InitController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "init [path]",
		Short: "Scaffold a new project",
		Long: `Create a new project skeleton in the target directory.

Writes pydist.yaml, requirements.txt, CHANGELOG.md, .gitignore and the
import package with its __init__.py. Existing files are kept unless
--force is given.`,
	}
}

// Execute scaffolds a project in the given target directory.
func (it *InitController) Execute(cmd *cobra.Command, args []string) {
	name, _ := cmd.Flags().GetString("name")
	author, _ := cmd.Flags().GetString("author")
	email, _ := cmd.Flags().GetString("email")
	description, _ := cmd.Flags().GetString("description")
	force, _ := cmd.Flags().GetBool("force")

	targetDir := projectDirFromArgs(args)

	if initErr := it.command.Execute(targetDir, commands.InitOptions{
		Name:        name,
		Author:      author,
		AuthorEmail: email,
		Description: description,
		Force:       force,
	}); initErr != nil {
		logger.Fatalf("Init failed: %v", initErr)
	}
}

// AddFlags adds the init-specific flags to the given Cobra command.
func (it *InitController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Distribution name (default: the directory name)")
	cmd.Flags().String("author", "", "Author display name")
	cmd.Flags().String("email", "", "Author contact address")
	cmd.Flags().String("description", "", "One-line project summary")
	cmd.Flags().Bool("force", false, "Overwrite files that already exist")
}
