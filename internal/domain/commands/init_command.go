package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pydist/internal/domain/entities"
	"github.com/rios0rios0/pydist/internal/domain/repositories"
)

const (
	initialVersion = "0.1.0"
	projectDirMode = 0o755
)

// Init is the interface for the init command.
type Init interface {
	Execute(targetDir string, opts InitOptions) error
}

// InitOptions holds the scaffolding inputs for a new project.
type InitOptions struct {
	Name        string
	Author      string
	AuthorEmail string
	Description string
	Force       bool
}

// InitCommand scaffolds a new project from the embedded templates.
type InitCommand struct {
	scaffolder repositories.Scaffolder
}

// NewInitCommand creates a new InitCommand with the given scaffolder.
func NewInitCommand(scaffolder repositories.Scaffolder) *InitCommand {
	return &InitCommand{
		scaffolder: scaffolder,
	}
}

// Execute creates the project skeleton in the target directory.
func (it *InitCommand) Execute(targetDir string, opts InitOptions) error {
	targetDir, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	if mkdirErr := os.MkdirAll(targetDir, projectDirMode); mkdirErr != nil {
		return fmt.Errorf("failed to create the project directory: %w", mkdirErr)
	}

	name := opts.Name
	if name == "" {
		name = defaultProjectName(targetDir)
	}

	description := opts.Description
	if description == "" {
		description = fmt.Sprintf("The %s package.", name)
	}

	settings := entities.DefaultSettings()
	settings.Package.Name = name
	settings.Package.Version = initialVersion
	settings.Package.Author = opts.Author
	settings.Package.AuthorEmail = opts.AuthorEmail
	settings.Package.Description = description

	if scaffoldErr := it.scaffolder.Scaffold(targetDir, settings, opts.Force); scaffoldErr != nil {
		return scaffoldErr
	}

	logger.Infof("[init] Created project %q in %s", name, targetDir)
	return nil
}

// defaultProjectName derives a distribution name from the directory name.
func defaultProjectName(targetDir string) string {
	name := strings.ToLower(filepath.Base(targetDir))
	name = strings.ReplaceAll(name, "_", "-")
	return strings.ReplaceAll(name, " ", "-")
}
