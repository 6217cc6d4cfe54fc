//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/pydist/internal/domain/entities"
	"github.com/rios0rios0/pydist/internal/domain/repositories"
)

// SpyScaffolder implements repositories.Scaffolder as a configurable spy.
type SpyScaffolder struct {
	ScaffoldErr   error
	ScaffoldCalls []ScaffoldCall
}

// ScaffoldCall records a single invocation of Scaffold.
type ScaffoldCall struct {
	TargetDir string
	Settings  *entities.Settings
	Force     bool
}

var _ repositories.Scaffolder = (*SpyScaffolder)(nil)

func (s *SpyScaffolder) Scaffold(targetDir string, settings *entities.Settings, force bool) error {
	s.ScaffoldCalls = append(s.ScaffoldCalls, ScaffoldCall{
		TargetDir: targetDir,
		Settings:  settings,
		Force:     force,
	})
	return s.ScaffoldErr
}
