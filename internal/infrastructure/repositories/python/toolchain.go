package python

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pydist/internal/domain/entities"
)

const setupFileMode = 0o644

// errSetupScriptExists aborts a build that would clobber a hand-written
// setup.py. The Force option overrides it.
var errSetupScriptExists = errors.New(
	"setup.py already exists; pass --force to overwrite it",
)

// writeSetupScript renders the descriptor into projectDir/setup.py.
// A pre-existing file is only replaced when force is set.
func writeSetupScript(
	projectDir string,
	descriptor entities.PackageDescriptor,
	force bool,
) (string, error) {
	path := filepath.Join(projectDir, entities.SetupScriptName)

	if _, statErr := os.Stat(path); statErr == nil && !force {
		return "", errSetupScriptExists
	}

	if writeErr := os.WriteFile(path, []byte(descriptor.RenderSetupScript()), setupFileMode); writeErr != nil {
		return "", fmt.Errorf("failed to write %s: %w", entities.SetupScriptName, writeErr)
	}

	return path, nil
}

// runToolchain executes the interpreter with the given arguments inside the
// project directory, returning the combined output.
func runToolchain(
	ctx context.Context,
	projectDir, python string,
	args []string,
	verbose bool,
) (string, error) {
	cmd := exec.CommandContext(ctx, python, args...)
	cmd.Dir = projectDir

	output, err := cmd.CombinedOutput()
	if verbose && len(output) > 0 {
		logger.Debugf("[toolchain] Output:\n%s", string(output))
	}
	if err != nil {
		return string(output), fmt.Errorf(
			"toolchain invocation failed: %w\nOutput:\n%s", err, string(output),
		)
	}

	return string(output), nil
}

// collectArtifacts scans the output directory for distribution files.
func collectArtifacts(outputDir string) ([]entities.BuildArtifact, error) {
	dirEntries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory %q: %w", outputDir, err)
	}

	var artifacts []entities.BuildArtifact
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		kind := entities.ArtifactKind(entry.Name())
		if kind == "" {
			continue
		}

		info, infoErr := entry.Info()
		if infoErr != nil {
			logger.Warnf("[toolchain] Cannot stat artifact %q: %v", entry.Name(), infoErr)
			continue
		}

		artifacts = append(artifacts, entities.BuildArtifact{
			Path: filepath.Join(outputDir, entry.Name()),
			Kind: kind,
			Size: info.Size(),
		})
	}

	return artifacts, nil
}

// resolveOutputDir anchors a relative output directory at the project and
// creates it when missing.
func resolveOutputDir(projectDir, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = entities.DefaultOutput
	}
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(projectDir, outputDir)
	}

	if mkdirErr := os.MkdirAll(outputDir, 0o755); mkdirErr != nil {
		return "", fmt.Errorf("failed to create output directory %q: %w", outputDir, mkdirErr)
	}

	return outputDir, nil
}

// resolveInterpreter picks the interpreter to run: the explicit option when
// set, then python3 or python from PATH, then the usual install locations.
func resolveInterpreter(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return findPythonBinary()
}

func findPythonBinary() (string, error) {
	// Try python3 first, then python
	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	commonPaths := []string{
		"/usr/bin/python3",
		"/usr/local/bin/python3",
		"/usr/bin/python",
		"/usr/local/bin/python",
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		commonPaths = append(commonPaths,
			filepath.Join(home, ".pyenv", "shims", "python3"),
			filepath.Join(home, ".pyenv", "shims", "python"),
		)
	}

	for _, p := range commonPaths {
		if _, statErr := os.Stat(p); statErr == nil {
			return p, nil
		}
	}

	return "", errors.New("python binary not found in PATH or common locations")
}
