package commands

import (
	"context"
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pydist/internal/domain/entities"
	"github.com/rios0rios0/pydist/internal/domain/repositories"
	"github.com/rios0rios0/pydist/internal/scanner"
)

// Outdated is the interface for the outdated command.
type Outdated interface {
	Execute(ctx context.Context, projectDir string, settings *entities.Settings, opts OutdatedOptions) error
}

// OutdatedOptions holds runtime options for a freshness report.
type OutdatedOptions struct {
	FailOnOutdated bool
}

// OutdatedCommand reports pinned requirements that lag behind the package index.
type OutdatedCommand struct {
	packageIndex repositories.PackageIndex
}

// NewOutdatedCommand creates a new OutdatedCommand with the given index client.
func NewOutdatedCommand(packageIndex repositories.PackageIndex) *OutdatedCommand {
	return &OutdatedCommand{
		packageIndex: packageIndex,
	}
}

// Execute checks every ==-pinned manifest requirement against the index.
func (it *OutdatedCommand) Execute(
	ctx context.Context,
	projectDir string,
	settings *entities.Settings,
	opts OutdatedOptions,
) error {
	projectDir, err := filepath.Abs(projectDir)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	requirements, scanErr := scanner.ScanRequirements(filepath.Join(projectDir, settings.Manifest))
	if scanErr != nil {
		return fmt.Errorf("failed to read the dependency manifest: %w", scanErr)
	}

	checked := 0
	outdated := 0
	unpinned := 0
	failures := 0

	for _, requirement := range requirements {
		if requirement.Name == "" {
			logger.Debugf("[outdated] Skipping non-requirement line %d: %q", requirement.Line, requirement.Raw)
			continue
		}
		checked++

		pinned, ok := requirement.PinnedVersion()
		if !ok {
			logger.Infof("[outdated] %s: not pinned with ==, skipped", requirement.Name)
			unpinned++
			continue
		}

		latest, lookupErr := it.packageIndex.LatestVersion(ctx, requirement.Name)
		if lookupErr != nil {
			logger.Errorf("[outdated] %s: %v", requirement.Name, lookupErr)
			failures++
			continue
		}

		if entities.IsNewerVersion(pinned, latest) {
			logger.Warnf("[outdated] %s: %s -> %s", requirement.Name, pinned, latest)
			outdated++
			continue
		}

		logger.Infof("[outdated] %s: %s is up to date", requirement.Name, pinned)
	}

	logger.Infof(
		"[outdated] Checked %d requirement(s): %d outdated, %d unpinned, %d lookup error(s)",
		checked, outdated, unpinned, failures,
	)

	if opts.FailOnOutdated && outdated > 0 {
		return fmt.Errorf("%d requirement(s) are outdated", outdated)
	}
	return nil
}
