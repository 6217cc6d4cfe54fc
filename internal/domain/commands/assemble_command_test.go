//go:build unit

package commands_test

import (
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

// newProject creates a project directory with a manifest and one
// importable package so assembly has something to discover.
func newProject(t *testing.T, manifest string, packages ...string) string {
	t.Helper()

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte(manifest), 0o600)
	require.NoError(t, err)

	for _, pkg := range packages {
		pkgDir := filepath.Join(dir, pkg)
		require.NoError(t, os.MkdirAll(pkgDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "__init__.py"), []byte(""), 0o600))
	}

	return dir
}

func newSettings() *entities.Settings {
	settings := entities.DefaultSettings()
	settings.Package.Name = "acme-toolkit"
	return settings
}

func TestAssembleCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should assemble the descriptor from configured metadata", func(t *testing.T) {
		t.Parallel()

		// given
		dir := newProject(t, "requests==2.32.0\nclick>=8.0\n", "acme_toolkit")
		settings := newSettings()
		settings.Package.SourceURL = "https://github.com/acme/toolkit"
		settings.Package.Version = "1.4.0"
		settings.Package.Author = "Jane Doe"
		settings.Package.AuthorEmail = "jane@acme.io"
		settings.Package.Description = "A toolkit."

		cmd := commands.NewAssembleCommand(&doubles.StubProjectMeta{})

		// when
		descriptor, err := cmd.Execute(dir, settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, "acme-toolkit", descriptor.Name)
		assert.Equal(t, "https://github.com/acme/toolkit", descriptor.SourceURL)
		assert.Equal(t, "1.4.0", descriptor.Version)
		assert.Equal(t, "Jane Doe", descriptor.Author)
		assert.Equal(t, "jane@acme.io", descriptor.AuthorEmail)
		assert.Equal(t, "A toolkit.", descriptor.Description)
		assert.Equal(t, []string{"acme_toolkit"}, descriptor.Packages)
		assert.Equal(t, []string{"requests==2.32.0", "click>=8.0"}, descriptor.Requirements)
		assert.True(t, descriptor.IncludePackageData)
	})

	t.Run("should fall back to git metadata for source URL and version", func(t *testing.T) {
		t.Parallel()

		// given
		dir := newProject(t, "requests==2.32.0\n", "acme_toolkit")
		settings := newSettings()

		meta := &doubles.StubProjectMeta{
			RemoteURL: "https://github.com/acme/toolkit",
			Tag:       "2.0.1",
		}
		cmd := commands.NewAssembleCommand(meta)

		// when
		descriptor, err := cmd.Execute(dir, settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://github.com/acme/toolkit", descriptor.SourceURL)
		assert.Equal(t, "2.0.1", descriptor.Version)
	})

	t.Run("should leave source URL and version empty without config or git", func(t *testing.T) {
		t.Parallel()

		// given
		dir := newProject(t, "requests==2.32.0\n", "acme_toolkit")
		settings := newSettings()

		cmd := commands.NewAssembleCommand(&doubles.StubProjectMeta{})

		// when
		descriptor, err := cmd.Execute(dir, settings)

		// then
		require.NoError(t, err)
		assert.Empty(t, descriptor.SourceURL)
		assert.Empty(t, descriptor.Version)
	})

	t.Run("should fail when reading the origin remote fails", func(t *testing.T) {
		t.Parallel()

		// given
		dir := newProject(t, "requests==2.32.0\n", "acme_toolkit")
		settings := newSettings()

		meta := &doubles.StubProjectMeta{RemoteErr: errors.New("repository is corrupt")}
		cmd := commands.NewAssembleCommand(meta)

		// when
		_, err := cmd.Execute(dir, settings)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read the origin remote")
	})

	t.Run("should fail when reading git tags fails", func(t *testing.T) {
		t.Parallel()

		// given
		dir := newProject(t, "requests==2.32.0\n", "acme_toolkit")
		settings := newSettings()

		meta := &doubles.StubProjectMeta{TagErr: errors.New("packed-refs unreadable")}
		cmd := commands.NewAssembleCommand(meta)

		// when
		_, err := cmd.Execute(dir, settings)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read git tags")
	})

	t.Run("should fail when the manifest is missing", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		settings := newSettings()
		settings.Package.Version = "1.0.0"

		cmd := commands.NewAssembleCommand(&doubles.StubProjectMeta{})

		// when
		_, err := cmd.Execute(dir, settings)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read the dependency manifest")
	})

	t.Run("should read the manifest configured in settings", func(t *testing.T) {
		t.Parallel()

		// given
		dir := newProject(t, "", "acme_toolkit")
		err := os.WriteFile(
			filepath.Join(dir, "requirements-prod.txt"), []byte("httpx==0.27.0\n"), 0o600,
		)
		require.NoError(t, err)

		settings := newSettings()
		settings.Package.Version = "1.0.0"
		settings.Manifest = "requirements-prod.txt"

		cmd := commands.NewAssembleCommand(&doubles.StubProjectMeta{})

		// when
		descriptor, execErr := cmd.Execute(dir, settings)

		// then
		require.NoError(t, execErr)
		assert.Equal(t, []string{"httpx==0.27.0"}, descriptor.Requirements)
	})

	t.Run("should carry option lines verbatim into the requirements", func(t *testing.T) {
		t.Parallel()

		// given
		dir := newProject(t, "-r base.txt\nrequests==2.32.0\n", "acme_toolkit")
		settings := newSettings()
		settings.Package.Version = "1.0.0"

		cmd := commands.NewAssembleCommand(&doubles.StubProjectMeta{})

		// when
		descriptor, err := cmd.Execute(dir, settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"-r base.txt", "requests==2.32.0"}, descriptor.Requirements)
	})

	t.Run("should discover packages under the configured root", func(t *testing.T) {
		t.Parallel()

		// given
		dir := newProject(t, "requests==2.32.0\n")
		srcPkg := filepath.Join(dir, "src", "acme_toolkit")
		require.NoError(t, os.MkdirAll(srcPkg, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(srcPkg, "__init__.py"), []byte(""), 0o600))

		settings := newSettings()
		settings.Package.Version = "1.0.0"
		settings.Discovery.Root = "src"

		cmd := commands.NewAssembleCommand(&doubles.StubProjectMeta{})

		// when
		descriptor, err := cmd.Execute(dir, settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"acme_toolkit"}, descriptor.Packages)
	})

	t.Run("should apply discovery excludes", func(t *testing.T) {
		t.Parallel()

		// given
		dir := newProject(t, "requests==2.32.0\n", "acme_toolkit", "tests")
		settings := newSettings()
		settings.Package.Version = "1.0.0"
		settings.Discovery.Exclude = []string{"tests", "tests.*"}

		cmd := commands.NewAssembleCommand(&doubles.StubProjectMeta{})

		// when
		descriptor, err := cmd.Execute(dir, settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"acme_toolkit"}, descriptor.Packages)
	})
}
