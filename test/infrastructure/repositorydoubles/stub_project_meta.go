//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/pydist/internal/domain/repositories"
)

// StubProjectMeta implements repositories.ProjectMeta with canned answers.
type StubProjectMeta struct {
	RemoteURL string
	RemoteErr error

	Tag    string
	TagErr error

	Branch    string
	BranchErr error
}

var _ repositories.ProjectMeta = (*StubProjectMeta)(nil)

func (m *StubProjectMeta) SourceURL(_ string) (string, error) {
	return m.RemoteURL, m.RemoteErr
}

func (m *StubProjectMeta) LatestTag(_ string) (string, error) {
	return m.Tag, m.TagErr
}

func (m *StubProjectMeta) CurrentBranch(_ string) (string, error) {
	return m.Branch, m.BranchErr
}
