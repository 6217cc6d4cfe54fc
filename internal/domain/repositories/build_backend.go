package repositories

import (
	"context"

	"github.com/rios0rios0/pydist/internal/domain/entities"
)

// BuildBackend abstracts a Python packaging toolchain (PEP 517 build,
// legacy setuptools). Each implementation owns the full hand-off: writing
// the setup script into the project and invoking the toolchain on it.
type BuildBackend interface {
	// Name returns the backend identifier (e.g. "pep517", "setuptools").
	Name() string

	// Build writes the descriptor's setup script into projectDir and runs
	// the toolchain, returning the artifacts it produced.
	Build(
		ctx context.Context,
		projectDir string,
		descriptor entities.PackageDescriptor,
		opts entities.BackendOptions,
	) ([]entities.BuildArtifact, error)
}
