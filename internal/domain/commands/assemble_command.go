package commands

import (
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pydist/internal/domain/entities"
	"github.com/rios0rios0/pydist/internal/domain/repositories"
	"github.com/rios0rios0/pydist/internal/scanner"
)

// Assemble is the interface for the descriptor assembly step.
type Assemble interface {
	Execute(projectDir string, settings *entities.Settings) (entities.PackageDescriptor, error)
}

// AssembleCommand builds the package descriptor for a project directory:
// configured metadata first, git metadata as fallback, then the manifest
// read and the package discovery walk.
type AssembleCommand struct {
	projectMeta repositories.ProjectMeta
}

// NewAssembleCommand creates a new AssembleCommand with the given metadata reader.
func NewAssembleCommand(projectMeta repositories.ProjectMeta) *AssembleCommand {
	return &AssembleCommand{
		projectMeta: projectMeta,
	}
}

// Execute assembles the descriptor for the project. It runs once per
// invocation; the result is returned by value and never mutated afterwards.
func (it *AssembleCommand) Execute(
	projectDir string,
	settings *entities.Settings,
) (entities.PackageDescriptor, error) {
	sourceURL, urlErr := it.resolveSourceURL(projectDir, settings)
	if urlErr != nil {
		return entities.PackageDescriptor{}, urlErr
	}

	version, versionErr := it.resolveVersion(projectDir, settings)
	if versionErr != nil {
		return entities.PackageDescriptor{}, versionErr
	}

	manifestPath := filepath.Join(projectDir, settings.Manifest)
	requirements, scanErr := scanner.ScanRequirements(manifestPath)
	if scanErr != nil {
		return entities.PackageDescriptor{}, fmt.Errorf("failed to read the dependency manifest: %w", scanErr)
	}

	discoveryRoot := projectDir
	if settings.Discovery.Root != "" && settings.Discovery.Root != "." {
		discoveryRoot = filepath.Join(projectDir, settings.Discovery.Root)
	}

	packages, findErr := scanner.FindPackages(
		discoveryRoot, settings.Discovery.Include, settings.Discovery.Exclude,
	)
	if findErr != nil {
		return entities.PackageDescriptor{}, fmt.Errorf("failed to discover packages: %w", findErr)
	}

	rawRequirements := make([]string, 0, len(requirements))
	for _, requirement := range requirements {
		rawRequirements = append(rawRequirements, requirement.Raw)
	}

	return entities.PackageDescriptor{
		Name:               settings.Package.Name,
		SourceURL:          sourceURL,
		Version:            version,
		Author:             settings.Package.Author,
		AuthorEmail:        settings.Package.AuthorEmail,
		Description:        settings.Package.Description,
		Packages:           packages,
		Requirements:       rawRequirements,
		IncludePackageData: true,
	}, nil
}

// resolveSourceURL prefers the configured URL, falling back to the project's
// "origin" remote.
func (it *AssembleCommand) resolveSourceURL(
	projectDir string,
	settings *entities.Settings,
) (string, error) {
	if settings.Package.SourceURL != "" {
		return settings.Package.SourceURL, nil
	}

	url, err := it.projectMeta.SourceURL(projectDir)
	if err != nil {
		return "", fmt.Errorf("failed to read the origin remote: %w", err)
	}
	if url == "" {
		logger.Warn("No source_url configured and no git origin remote found, leaving it empty.")
	}
	return url, nil
}

// resolveVersion prefers the configured version, falling back to the highest
// version-ordered git tag.
func (it *AssembleCommand) resolveVersion(
	projectDir string,
	settings *entities.Settings,
) (string, error) {
	if settings.Package.Version != "" {
		return settings.Package.Version, nil
	}

	tag, err := it.projectMeta.LatestTag(projectDir)
	if err != nil {
		return "", fmt.Errorf("failed to read git tags: %w", err)
	}
	if tag == "" {
		logger.Warn("No version configured and no git tag found, leaving it empty.")
	}
	return tag, nil
}
