//go:build unit

package commands_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pydist/internal/domain/commands"
	"github.com/rios0rios0/pydist/internal/domain/entities"
	doubles "github.com/rios0rios0/pydist/test/infrastructure/repositorydoubles"
)

// newManifestDir creates a project directory holding only a manifest.
func newManifestDir(t *testing.T, manifest string) string {
	t.Helper()

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte(manifest), 0o600)
	require.NoError(t, err)
	return dir
}

func TestOutdatedCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should report outdated requirements without failing", func(t *testing.T) {
		t.Parallel()

		// given
		dir := newManifestDir(t, "requests==2.32.0\nclick==8.1.7\n")
		index := &doubles.StubPackageIndex{
			Versions: map[string]string{"requests": "2.99.0", "click": "8.1.7"},
		}

		cmd := commands.NewOutdatedCommand(index)

		// when
		err := cmd.Execute(context.Background(), dir, entities.DefaultSettings(), commands.OutdatedOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"requests", "click"}, index.LookedUp)
	})

	t.Run("should fail on outdated requirements when asked", func(t *testing.T) {
		t.Parallel()

		// given
		dir := newManifestDir(t, "requests==2.32.0\n")
		index := &doubles.StubPackageIndex{
			Versions: map[string]string{"requests": "2.99.0"},
		}

		cmd := commands.NewOutdatedCommand(index)
		opts := commands.OutdatedOptions{FailOnOutdated: true}

		// when
		err := cmd.Execute(context.Background(), dir, entities.DefaultSettings(), opts)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 requirement(s) are outdated")
	})

	t.Run("should not fail when everything is up to date", func(t *testing.T) {
		t.Parallel()

		// given
		dir := newManifestDir(t, "requests==2.32.0\n")
		index := &doubles.StubPackageIndex{
			Versions: map[string]string{"requests": "2.32.0"},
		}

		cmd := commands.NewOutdatedCommand(index)
		opts := commands.OutdatedOptions{FailOnOutdated: true}

		// when
		err := cmd.Execute(context.Background(), dir, entities.DefaultSettings(), opts)

		// then
		require.NoError(t, err)
	})

	t.Run("should skip unpinned requirements", func(t *testing.T) {
		t.Parallel()

		// given
		dir := newManifestDir(t, "click>=8.0\ndjango~=4.2\n")
		index := &doubles.StubPackageIndex{}

		cmd := commands.NewOutdatedCommand(index)
		opts := commands.OutdatedOptions{FailOnOutdated: true}

		// when
		err := cmd.Execute(context.Background(), dir, entities.DefaultSettings(), opts)

		// then
		require.NoError(t, err)
		assert.Empty(t, index.LookedUp)
	})

	t.Run("should skip option and URL lines", func(t *testing.T) {
		t.Parallel()

		// given
		dir := newManifestDir(t, "-r base.txt\n--index-url https://pypi.example.com/simple\n")
		index := &doubles.StubPackageIndex{}

		cmd := commands.NewOutdatedCommand(index)

		// when
		err := cmd.Execute(context.Background(), dir, entities.DefaultSettings(), commands.OutdatedOptions{})

		// then
		require.NoError(t, err)
		assert.Empty(t, index.LookedUp)
	})

	t.Run("should tolerate index lookup failures", func(t *testing.T) {
		t.Parallel()

		// given
		dir := newManifestDir(t, "requests==2.32.0\n")
		index := &doubles.StubPackageIndex{LookupErr: errors.New("index unreachable")}

		cmd := commands.NewOutdatedCommand(index)
		opts := commands.OutdatedOptions{FailOnOutdated: true}

		// when
		err := cmd.Execute(context.Background(), dir, entities.DefaultSettings(), opts)

		// then
		require.NoError(t, err)
	})

	t.Run("should fail when the manifest is missing", func(t *testing.T) {
		t.Parallel()

		// given
		index := &doubles.StubPackageIndex{}
		cmd := commands.NewOutdatedCommand(index)

		// when
		err := cmd.Execute(
			context.Background(), t.TempDir(), entities.DefaultSettings(), commands.OutdatedOptions{},
		)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read the dependency manifest")
	})
}
