package python

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pydist/internal/domain/entities"
	"github.com/rios0rios0/pydist/internal/domain/repositories"
)

const setuptoolsName = "setuptools"

// SetuptoolsBackendRepository builds distributions by invoking the setup
// script directly (`python setup.py sdist bdist_wheel`). The legacy path for
// environments without the PEP 517 build frontend.
type SetuptoolsBackendRepository struct{}

// NewSetuptoolsBackendRepository creates the legacy build backend.
func NewSetuptoolsBackendRepository() repositories.BuildBackend {
	return &SetuptoolsBackendRepository{}
}

func (b *SetuptoolsBackendRepository) Name() string { return setuptoolsName }

// Build writes the setup script and runs it with sdist and bdist_wheel.
func (b *SetuptoolsBackendRepository) Build(
	ctx context.Context,
	projectDir string,
	descriptor entities.PackageDescriptor,
	opts entities.BackendOptions,
) ([]entities.BuildArtifact, error) {
	python, err := resolveInterpreter(opts.Python)
	if err != nil {
		return nil, err
	}

	scriptPath, writeErr := writeSetupScript(projectDir, descriptor, opts.Force)
	if writeErr != nil {
		return nil, writeErr
	}
	logger.Debugf("[setuptools] Wrote %s", scriptPath)

	outputDir, outErr := resolveOutputDir(projectDir, opts.OutputDir)
	if outErr != nil {
		return nil, outErr
	}

	logger.Infof("[setuptools] Building %s %s with %s", descriptor.Name, descriptor.Version, python)

	args := []string{
		entities.SetupScriptName, "sdist", "bdist_wheel", "--dist-dir", outputDir,
	}
	if _, runErr := runToolchain(ctx, projectDir, python, args, opts.Verbose); runErr != nil {
		return nil, runErr
	}

	return collectArtifacts(outputDir)
}
