package commands

import (
	"context"
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pydist/internal/domain/entities"
	infraRepos "github.com/rios0rios0/pydist/internal/infrastructure/repositories"
)

// Build is the interface for the build command.
type Build interface {
	Execute(ctx context.Context, projectDir string, settings *entities.Settings, opts BuildOptions) error
}

// BuildOptions holds runtime options for a single build.
type BuildOptions struct {
	DryRun  bool
	Verbose bool
	Force   bool   // Overwrite an existing setup.py
	Backend string // If set, overrides the configured backend (CLI override)
	Output  string // If set, overrides the configured output directory (CLI override)
	Python  string // If set, overrides the configured interpreter (CLI override)
}

// BuildCommand orchestrates the full packaging flow:
// assemble descriptor -> validate -> render setup.py -> run the backend.
type BuildCommand struct {
	assemble        Assemble
	backendRegistry *infraRepos.BackendRegistry
}

// NewBuildCommand creates a new BuildCommand with the given backend registry.
func NewBuildCommand(assemble Assemble, backendRegistry *infraRepos.BackendRegistry) *BuildCommand {
	return &BuildCommand{
		assemble:        assemble,
		backendRegistry: backendRegistry,
	}
}

// Execute runs a full packaging cycle for the given project directory.
func (it *BuildCommand) Execute(
	ctx context.Context,
	projectDir string,
	settings *entities.Settings,
	opts BuildOptions,
) error {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

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
		logger.Warnf("[build] %s", warning)
	}
	if !report.OK() {
		for _, problem := range report.Errors {
			logger.Errorf("[build] %s", problem)
		}
		return fmt.Errorf("descriptor validation failed with %d error(s)", len(report.Errors))
	}

	backendName := settings.Build.Backend
	if opts.Backend != "" {
		backendName = opts.Backend
	}

	backend, backendErr := it.backendRegistry.Get(backendName)
	if backendErr != nil {
		return backendErr
	}

	outputDir := settings.Build.Output
	if opts.Output != "" {
		outputDir = opts.Output
	}

	python := settings.Build.Python
	if opts.Python != "" {
		python = opts.Python
	}

	logger.Infof(
		"[build] Packaging %s %s with the %q backend (output: %s)",
		descriptor.Name, descriptor.Version, backend.Name(), outputDir,
	)

	if opts.DryRun {
		logger.Infof("[build] Dry run, generated %s follows:", entities.SetupScriptName)
		fmt.Print(descriptor.RenderSetupScript())
		return nil
	}

	artifacts, buildErr := backend.Build(ctx, projectDir, descriptor, entities.BackendOptions{
		Verbose:   opts.Verbose,
		Force:     opts.Force,
		OutputDir: outputDir,
		Python:    python,
	})
	if buildErr != nil {
		return fmt.Errorf("build failed: %w", buildErr)
	}

	if len(artifacts) == 0 {
		logger.Warn("[build] The backend finished but produced no artifacts.")
		return nil
	}

	for _, artifact := range artifacts {
		logger.Infof("[build] Built %s (%s, %s)", artifact.Path, artifact.Kind, formatSize(artifact.Size))
	}
	logger.Infof("[build] Done: %d artifact(s) in %s", len(artifacts), outputDir)
	return nil
}

// formatSize renders a byte count in a compact human-readable form.
func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
