package commands

import (
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pydist/internal/domain/entities"
	"github.com/rios0rios0/pydist/internal/scanner"
)

// Check is the interface for the check command.
type Check interface {
	Execute(projectDir string, settings *entities.Settings) error
}

// CheckCommand validates the assembled descriptor, re-parses the manifest
// and reports drift against an existing pyproject.toml.
type CheckCommand struct {
	assemble Assemble
}

// NewCheckCommand creates a new CheckCommand.
func NewCheckCommand(assemble Assemble) *CheckCommand {
	return &CheckCommand{
		assemble: assemble,
	}
}

// Execute validates the project; hard rule violations become an error,
// everything else is logged as a warning.
func (it *CheckCommand) Execute(projectDir string, settings *entities.Settings) error {
	projectDir, err := filepath.Abs(projectDir)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	descriptor, assembleErr := it.assemble.Execute(projectDir, settings)
	if assembleErr != nil {
		return assembleErr
	}

	report := descriptor.Validate()
	for _, warning := range report.Warnings {
		logger.Warnf("[check] %s", warning)
	}
	if !report.OK() {
		for _, problem := range report.Errors {
			logger.Errorf("[check] %s", problem)
		}
		return fmt.Errorf("found %d problem(s) in the %s descriptor", len(report.Errors), descriptor.Name)
	}

	it.checkManifest(projectDir, settings)
	it.checkPyProjectDrift(projectDir, descriptor)

	logger.Infof(
		"[check] %s %s looks good: %d package(s), %d requirement(s)",
		descriptor.Name, descriptor.Version, len(descriptor.Packages), len(descriptor.Requirements),
	)
	return nil
}

// checkManifest flags manifest lines that are not plain requirements
// (pip options, VCS references). They are carried to install_requires
// verbatim, where pip will reject them.
func (it *CheckCommand) checkManifest(projectDir string, settings *entities.Settings) {
	requirements, scanErr := scanner.ScanRequirements(filepath.Join(projectDir, settings.Manifest))
	if scanErr != nil {
		logger.Warnf("[check] %v", scanErr)
		return
	}

	for _, requirement := range requirements {
		if requirement.Name == "" {
			logger.Warnf(
				"[check] Line %d of %s is not a plain requirement: %q",
				requirement.Line, settings.Manifest, requirement.Raw,
			)
		}
	}
}

// checkPyProjectDrift warns when an existing pyproject.toml disagrees with
// the configured metadata. Reading it is best effort; a broken file is a
// warning, not a failure.
func (it *CheckCommand) checkPyProjectDrift(projectDir string, descriptor entities.PackageDescriptor) {
	pyProject, readErr := scanner.ReadPyProject(projectDir)
	if readErr != nil {
		logger.Warnf("[check] %v", readErr)
		return
	}
	if pyProject == nil {
		return
	}

	if pyProject.Project.Name != "" && pyProject.Project.Name != descriptor.Name {
		logger.Warnf(
			"[check] pyproject.toml names the project %q but the config says %q",
			pyProject.Project.Name, descriptor.Name,
		)
	}
	if pyProject.Project.Version != "" && pyProject.Project.Version != descriptor.Version {
		logger.Warnf(
			"[check] pyproject.toml pins version %s but the config resolves to %s",
			pyProject.Project.Version, descriptor.Version,
		)
	}
}
