package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// PyProjectFile is the standard project metadata file checked for drift.
const PyProjectFile = "pyproject.toml"

// PyProject mirrors the parts of a pyproject.toml [project] table that can
// drift against the descriptor.
type PyProject struct {
	Project struct {
		Name         string   `toml:"name"`
		Version      string   `toml:"version"`
		Description  string   `toml:"description"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

// ReadPyProject parses the pyproject.toml in dir. A missing file returns
// (nil, nil) because most projects in this flow do not carry one.
func ReadPyProject(dir string) (*PyProject, error) {
	path := filepath.Join(dir, PyProjectFile)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	var project PyProject
	if unmarshalErr := toml.Unmarshal(data, &project); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, unmarshalErr)
	}

	return &project, nil
}
