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
	"github.com/rios0rios0/pydist/test/domain/commanddoubles"
	"github.com/rios0rios0/pydist/test/domain/entitybuilders"
)

func TestCheckCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should pass a valid project", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		err := os.WriteFile(
			filepath.Join(dir, "requirements.txt"), []byte("requests==2.32.0\n"), 0o600,
		)
		require.NoError(t, err)

		descriptor := entitybuilders.NewPackageDescriptorBuilder().BuildPackageDescriptor()
		assemble := &commanddoubles.StubAssembleCommand{Descriptor: descriptor}

		cmd := commands.NewCheckCommand(assemble)

		// when
		execErr := cmd.Execute(dir, entities.DefaultSettings())

		// then
		require.NoError(t, execErr)
		assert.Equal(t, 1, assemble.ExecuteCallCount)
	})

	t.Run("should fail when the descriptor has hard violations", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := entitybuilders.NewPackageDescriptorBuilder().
			WithName("").
			WithAuthorEmail("not-an-address").
			BuildPackageDescriptor()
		assemble := &commanddoubles.StubAssembleCommand{Descriptor: descriptor}

		cmd := commands.NewCheckCommand(assemble)

		// when
		err := cmd.Execute(t.TempDir(), entities.DefaultSettings())

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "found 2 problem(s)")
	})

	t.Run("should propagate assembly errors", func(t *testing.T) {
		t.Parallel()

		// given
		assemble := &commanddoubles.StubAssembleCommand{ExecuteErr: errors.New("no manifest")}

		cmd := commands.NewCheckCommand(assemble)

		// when
		err := cmd.Execute(t.TempDir(), entities.DefaultSettings())

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no manifest")
	})

	t.Run("should tolerate manifest option lines with a warning", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		err := os.WriteFile(
			filepath.Join(dir, "requirements.txt"),
			[]byte("-r base.txt\nrequests==2.32.0\n"),
			0o600,
		)
		require.NoError(t, err)

		descriptor := entitybuilders.NewPackageDescriptorBuilder().BuildPackageDescriptor()
		assemble := &commanddoubles.StubAssembleCommand{Descriptor: descriptor}

		cmd := commands.NewCheckCommand(assemble)

		// when
		execErr := cmd.Execute(dir, entities.DefaultSettings())

		// then
		require.NoError(t, execErr)
	})

	t.Run("should tolerate pyproject drift with a warning", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		pyProject := "[project]\nname = \"other-name\"\nversion = \"9.9.9\"\n"
		err := os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(pyProject), 0o600)
		require.NoError(t, err)

		descriptor := entitybuilders.NewPackageDescriptorBuilder().BuildPackageDescriptor()
		assemble := &commanddoubles.StubAssembleCommand{Descriptor: descriptor}

		cmd := commands.NewCheckCommand(assemble)

		// when
		execErr := cmd.Execute(dir, entities.DefaultSettings())

		// then
		require.NoError(t, execErr)
	})
}
