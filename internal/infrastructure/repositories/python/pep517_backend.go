package python

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pydist/internal/domain/entities"
	"github.com/rios0rios0/pydist/internal/domain/repositories"
)

const pep517Name = "pep517"

// PEP517BackendRepository builds distributions through `python -m build`,
// the PEP 517 frontend, which isolates the build in its own environment.
type PEP517BackendRepository struct{}

// NewPEP517BackendRepository creates the default build backend.
func NewPEP517BackendRepository() repositories.BuildBackend {
	return &PEP517BackendRepository{}
}

func (b *PEP517BackendRepository) Name() string { return pep517Name }

// Build writes the setup script and runs `python -m build --sdist --wheel`.
func (b *PEP517BackendRepository) Build(
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
	logger.Debugf("[pep517] Wrote %s", scriptPath)

	outputDir, outErr := resolveOutputDir(projectDir, opts.OutputDir)
	if outErr != nil {
		return nil, outErr
	}

	logger.Infof("[pep517] Building %s %s with %s", descriptor.Name, descriptor.Version, python)

	args := []string{"-m", "build", "--sdist", "--wheel", "--outdir", outputDir}
	output, runErr := runToolchain(ctx, projectDir, python, args, opts.Verbose)
	if runErr != nil {
		if strings.Contains(output, "No module named build") {
			return nil, fmt.Errorf(
				"the 'build' frontend is not installed for %s (pip install build): %w",
				python, runErr,
			)
		}
		return nil, runErr
	}

	return collectArtifacts(outputDir)
}
