package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Defaults applied to settings fields left empty in the config file.
const (
	DefaultManifest  = "requirements.txt"
	DefaultBackend   = "pep517"
	DefaultOutput    = "dist"
	DefaultChangelog = "CHANGELOG.md"
)

// Settings is the project configuration, the typed render context every
// placeholder of the legacy template flow became a field of.
type Settings struct {
	Package   PackageSettings   `yaml:"package"`
	Manifest  string            `yaml:"manifest"`
	Discovery DiscoverySettings `yaml:"discovery"`
	Build     BuildSettings     `yaml:"build"`
	Changelog string            `yaml:"changelog"`
}

// PackageSettings holds the descriptor metadata fields.
type PackageSettings struct {
	Name        string `yaml:"name"`
	SourceURL   string `yaml:"source_url"`
	Version     string `yaml:"version"`
	Author      string `yaml:"author"`
	AuthorEmail string `yaml:"author_email"`
	Description string `yaml:"description"`
}

// DiscoverySettings steers package discovery.
type DiscoverySettings struct {
	Root    string   `yaml:"root"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// BuildSettings steers the toolchain hand-off.
type BuildSettings struct {
	Backend string `yaml:"backend"`
	Output  string `yaml:"output"`
	Python  string `yaml:"python"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file, expanding environment
// variables in every string field and applying defaults.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.expandEnv()
	settings.applyDefaults()

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// DefaultSettings returns settings with only the defaults applied, for
// commands that can operate without a config file (e.g. outdated).
func DefaultSettings() *Settings {
	settings := &Settings{}
	settings.applyDefaults()
	return settings
}

// FindConfigFile searches for a configuration file in standard locations,
// starting from the given project directory. Returns the path to the first
// file found or an error if none is found.
func FindConfigFile(dir string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		dir,
		filepath.Join(dir, ".config"),
		filepath.Join(dir, "configs"),
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		"pydist.yaml",
		"pydist.yml",
		".pydist.yaml",
		".pydist.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// expandEnv resolves ${ENV_VAR} references in every user-facing string field.
func (it *Settings) expandEnv() {
	fields := []*string{
		&it.Package.Name,
		&it.Package.SourceURL,
		&it.Package.Version,
		&it.Package.Author,
		&it.Package.AuthorEmail,
		&it.Package.Description,
		&it.Manifest,
		&it.Discovery.Root,
		&it.Build.Backend,
		&it.Build.Output,
		&it.Build.Python,
		&it.Changelog,
	}
	for _, field := range fields {
		*field = resolveEnvRefs(*field)
	}
}

// resolveEnvRefs expands environment variable references (${VAR}) in a value.
// Unset variables expand to the empty string.
func resolveEnvRefs(raw string) string {
	if raw == "" {
		return raw
	}

	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Debugf("Environment variable %q is not set", varName)
		return ""
	})
}

func (it *Settings) applyDefaults() {
	if it.Manifest == "" {
		it.Manifest = DefaultManifest
	}
	if it.Discovery.Root == "" {
		it.Discovery.Root = "."
	}
	if it.Build.Backend == "" {
		it.Build.Backend = DefaultBackend
	}
	if it.Build.Output == "" {
		it.Build.Output = DefaultOutput
	}
	if it.Changelog == "" {
		it.Changelog = DefaultChangelog
	}
}

// validate checks for required configuration values.
func (it *Settings) validate() error {
	if it.Package.Name == "" {
		return errors.New("package.name is required")
	}
	return nil
}
