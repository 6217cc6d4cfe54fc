package repositories

import (
	"github.com/rios0rios0/pydist/internal/domain/entities"
)

// Scaffolder materializes a new project skeleton on disk.
type Scaffolder interface {
	// Scaffold writes the project template into targetDir, expanding
	// placeholders from the settings. Pre-existing files make it fail
	// unless force is set.
	Scaffold(targetDir string, settings *entities.Settings, force bool) error
}
