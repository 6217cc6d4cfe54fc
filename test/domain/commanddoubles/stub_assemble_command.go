//go:build integration || unit || test

// Package commanddoubles provides test doubles (spies, stubs, dummies) for
// command interfaces. These are hand-crafted implementations, no mock frameworks.
package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/pydist/internal/domain/commands"
	"github.com/rios0rios0/pydist/internal/domain/entities"
)

// StubAssembleCommand is a stub implementation of commands.Assemble.
type StubAssembleCommand struct {
	Descriptor       entities.PackageDescriptor
	ExecuteErr       error
	ExecuteCallCount int
	LastProjectDir   string
	LastSettings     *entities.Settings
}

var _ commands.Assemble = (*StubAssembleCommand)(nil)

func (s *StubAssembleCommand) Execute(
	projectDir string,
	settings *entities.Settings,
) (entities.PackageDescriptor, error) {
	s.ExecuteCallCount++
	s.LastProjectDir = projectDir
	s.LastSettings = settings
	return s.Descriptor, s.ExecuteErr
}
