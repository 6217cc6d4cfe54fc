package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pydist/internal/domain/entities"
	"github.com/rios0rios0/pydist/internal/domain/repositories"
)

//go:embed all:templates
var templateFS embed.FS

const (
	templateRoot = "templates/project"
	dirMode      = 0o755
	fileMode     = 0o644

	// packageDirName is the template directory renamed to the project's
	// import package on materialization.
	packageDirName = "pkg"
)

// placeholderPattern matches ${name} placeholders inside template files.
var placeholderPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// TemplateScaffoldRepository materializes the embedded project skeleton.
type TemplateScaffoldRepository struct{}

// NewTemplateScaffoldRepository creates the embedded-template scaffolder.
func NewTemplateScaffoldRepository() repositories.Scaffolder {
	return &TemplateScaffoldRepository{}
}

// Scaffold copies the project template into targetDir, expanding every
// placeholder from the settings. Any placeholder the settings cannot fill
// aborts the run before a single file is written badly.
func (s *TemplateScaffoldRepository) Scaffold(
	targetDir string,
	settings *entities.Settings,
	force bool,
) error {
	values := placeholderValues(settings)

	return fs.WalkDir(templateFS, templateRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk templates: %w", err)
		}
		if path == templateRoot {
			return nil
		}

		dest := filepath.Join(targetDir, materializedPath(path, settings))

		if entry.IsDir() {
			if mkdirErr := os.MkdirAll(dest, dirMode); mkdirErr != nil {
				return fmt.Errorf("failed to create directory %q: %w", dest, mkdirErr)
			}
			return nil
		}

		return s.writeTemplateFile(path, dest, values, force)
	})
}

func (s *TemplateScaffoldRepository) writeTemplateFile(
	templatePath, dest string,
	values map[string]string,
	force bool,
) error {
	if _, statErr := os.Stat(dest); statErr == nil && !force {
		return fmt.Errorf("%q already exists (use --force to overwrite)", dest)
	}

	raw, readErr := templateFS.ReadFile(templatePath)
	if readErr != nil {
		return fmt.Errorf("failed to read template %q: %w", templatePath, readErr)
	}

	content, expandErr := expandPlaceholders(string(raw), values)
	if expandErr != nil {
		return fmt.Errorf("template %q: %w", templatePath, expandErr)
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(dest), dirMode); mkdirErr != nil {
		return fmt.Errorf("failed to create directory for %q: %w", dest, mkdirErr)
	}
	if writeErr := os.WriteFile(dest, []byte(content), fileMode); writeErr != nil {
		return fmt.Errorf("failed to write %q: %w", dest, writeErr)
	}

	logger.Debugf("[init] Wrote %s", dest)
	return nil
}

// materializedPath maps a template path to its destination, relative to the
// target directory. The "pkg" directory becomes the import package and
// "gitignore" gains its leading dot (a literal .gitignore inside the module
// would confuse the embedding toolchain).
func materializedPath(templatePath string, settings *entities.Settings) string {
	rel := strings.TrimPrefix(templatePath, templateRoot+"/")

	segments := strings.Split(rel, "/")
	if segments[0] == packageDirName {
		segments[0] = entities.ImportPackageName(settings.Package.Name)
	}
	if last := len(segments) - 1; segments[last] == "gitignore" {
		segments[last] = ".gitignore"
	}

	return filepath.Join(segments...)
}

// placeholderValues flattens the settings into the placeholder namespace the
// templates draw from.
func placeholderValues(settings *entities.Settings) map[string]string {
	return map[string]string{
		"package":        settings.Package.Name,
		"import_package": entities.ImportPackageName(settings.Package.Name),
		"source_url":     settings.Package.SourceURL,
		"version":        settings.Package.Version,
		"author":         settings.Package.Author,
		"author_email":   settings.Package.AuthorEmail,
		"description":    settings.Package.Description,
		"manifest":       settings.Manifest,
		"changelog":      settings.Changelog,
		"backend":        settings.Build.Backend,
		"output":         settings.Build.Output,
	}
}

// expandPlaceholders fills ${name} references from values. Unknown
// placeholders are an error: scaffolding must never leave residue behind.
func expandPlaceholders(content string, values map[string]string) (string, error) {
	var missing []string

	expanded := placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := values[key]
		if !ok {
			missing = append(missing, key)
			return match
		}
		return value
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("unresolved placeholders: %s", strings.Join(missing, ", "))
	}

	return expanded, nil
}
