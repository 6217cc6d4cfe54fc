//go:build unit

package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pydist/internal/scanner"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestScanRequirements(t *testing.T) {
	t.Parallel()

	t.Run("should parse one requirement per line in manifest order", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, "requests==2.32.0\nclick>=8.0\nflask\n")

		// when
		requirements, err := scanner.ScanRequirements(path)

		// then
		require.NoError(t, err)
		require.Len(t, requirements, 3)
		assert.Equal(t, "requests", requirements[0].Name)
		assert.Equal(t, "==2.32.0", requirements[0].Constraint)
		assert.Equal(t, "click", requirements[1].Name)
		assert.Equal(t, ">=8.0", requirements[1].Constraint)
		assert.Equal(t, "flask", requirements[2].Name)
		assert.Empty(t, requirements[2].Constraint)
	})

	t.Run("should drop blank lines and keep original line numbers", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, "requests==2.32.0\n\n\nclick>=8.0\n")

		// when
		requirements, err := scanner.ScanRequirements(path)

		// then
		require.NoError(t, err)
		require.Len(t, requirements, 2)
		assert.Equal(t, 1, requirements[0].Line)
		assert.Equal(t, 4, requirements[1].Line)
	})

	t.Run("should drop full-line comments", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, "# production dependencies\nrequests==2.32.0\n  # indented comment\n")

		// when
		requirements, err := scanner.ScanRequirements(path)

		// then
		require.NoError(t, err)
		require.Len(t, requirements, 1)
		assert.Equal(t, "requests", requirements[0].Name)
	})

	t.Run("should strip inline comments", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, "requests==2.32.0  # pinned for CVE-2024-XXXX\n")

		// when
		requirements, err := scanner.ScanRequirements(path)

		// then
		require.NoError(t, err)
		require.Len(t, requirements, 1)
		assert.Equal(t, "requests==2.32.0", requirements[0].Raw)
		assert.Equal(t, "==2.32.0", requirements[0].Constraint)
	})

	t.Run("should trim surrounding whitespace from every line", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, "   requests==2.32.0   \n\tclick>=8.0\t\n")

		// when
		requirements, err := scanner.ScanRequirements(path)

		// then
		require.NoError(t, err)
		require.Len(t, requirements, 2)
		assert.Equal(t, "requests==2.32.0", requirements[0].Raw)
		assert.Equal(t, "click>=8.0", requirements[1].Raw)
	})

	t.Run("should parse extras", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, "requests[security,socks]==2.32.0\n")

		// when
		requirements, err := scanner.ScanRequirements(path)

		// then
		require.NoError(t, err)
		require.Len(t, requirements, 1)
		assert.Equal(t, "requests", requirements[0].Name)
		assert.Equal(t, []string{"security", "socks"}, requirements[0].Extras)
		assert.Equal(t, "==2.32.0", requirements[0].Constraint)
	})

	t.Run("should parse environment markers", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, `pywin32>=1.0 ; sys_platform == "win32"`+"\n")

		// when
		requirements, err := scanner.ScanRequirements(path)

		// then
		require.NoError(t, err)
		require.Len(t, requirements, 1)
		assert.Equal(t, "pywin32", requirements[0].Name)
		assert.Equal(t, ">=1.0", requirements[0].Constraint)
		assert.Equal(t, `sys_platform == "win32"`, requirements[0].Marker)
	})

	t.Run("should parse range constraints as a single specifier tail", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, "django>=4.2,<5.0\n")

		// when
		requirements, err := scanner.ScanRequirements(path)

		// then
		require.NoError(t, err)
		require.Len(t, requirements, 1)
		assert.Equal(t, "django", requirements[0].Name)
		assert.Equal(t, ">=4.2,<5.0", requirements[0].Constraint)
	})

	t.Run("should carry option lines raw with an empty name", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, "-r base.txt\n--index-url https://pypi.internal/simple\n")

		// when
		requirements, err := scanner.ScanRequirements(path)

		// then
		require.NoError(t, err)
		require.Len(t, requirements, 2)
		assert.Empty(t, requirements[0].Name)
		assert.Equal(t, "-r base.txt", requirements[0].Raw)
		assert.Empty(t, requirements[1].Name)
		assert.Equal(t, "--index-url https://pypi.internal/simple", requirements[1].Raw)
	})

	t.Run("should carry direct URL references raw with an empty name", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, "https://example.com/wheels/acme-1.0-py3-none-any.whl\n")

		// when
		requirements, err := scanner.ScanRequirements(path)

		// then
		require.NoError(t, err)
		require.Len(t, requirements, 1)
		assert.Empty(t, requirements[0].Name)
		assert.Contains(t, requirements[0].Raw, "https://example.com")
	})

	t.Run("should return an empty slice for a manifest of only comments", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, "# nothing here\n\n# still nothing\n")

		// when
		requirements, err := scanner.ScanRequirements(path)

		// then
		require.NoError(t, err)
		assert.Empty(t, requirements)
	})

	t.Run("should fail when the manifest does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "requirements.txt")

		// when
		_, err := scanner.ScanRequirements(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read manifest")
	})
}
