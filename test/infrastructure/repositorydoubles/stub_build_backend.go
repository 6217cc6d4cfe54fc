//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/pydist/internal/domain/entities"
	"github.com/rios0rios0/pydist/internal/domain/repositories"
)

// SpyBuildBackend implements repositories.BuildBackend as a configurable spy.
type SpyBuildBackend struct {
	// --- identity ---
	BackendName string

	// --- Build ---
	Artifacts  []entities.BuildArtifact
	BuildErr   error
	BuildCalls []BuildCall
}

// BuildCall records a single invocation of Build.
type BuildCall struct {
	ProjectDir string
	Descriptor entities.PackageDescriptor
	Opts       entities.BackendOptions
}

var _ repositories.BuildBackend = (*SpyBuildBackend)(nil)

func (b *SpyBuildBackend) Name() string { return b.BackendName }

func (b *SpyBuildBackend) Build(
	_ context.Context,
	projectDir string,
	descriptor entities.PackageDescriptor,
	opts entities.BackendOptions,
) ([]entities.BuildArtifact, error) {
	b.BuildCalls = append(b.BuildCalls, BuildCall{
		ProjectDir: projectDir,
		Descriptor: descriptor,
		Opts:       opts,
	})
	return b.Artifacts, b.BuildErr
}

// DummyBuildBackend is a no-op implementation of repositories.BuildBackend.
type DummyBuildBackend struct{}

var _ repositories.BuildBackend = (*DummyBuildBackend)(nil)

func (d *DummyBuildBackend) Name() string { return "dummy" }

func (d *DummyBuildBackend) Build(
	_ context.Context,
	_ string,
	_ entities.PackageDescriptor,
	_ entities.BackendOptions,
) ([]entities.BuildArtifact, error) {
	return nil, nil
}
