package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pydist/internal/domain/entities"
)

// loadSettings resolves and loads the configuration for a project directory.
// The --config flag wins; otherwise the standard locations are searched.
func loadSettings(cmd *cobra.Command, projectDir string) (*entities.Settings, string, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		found, err := entities.FindConfigFile(projectDir)
		if err != nil {
			return nil, "", fmt.Errorf(
				"no config file found: %w\nSpecify one with --config or create pydist.yaml", err,
			)
		}
		configPath = found
	}

	logger.Infof("Using config file: %s", configPath)

	settings, err := entities.NewSettings(configPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}

	return settings, configPath, nil
}

// loadSettingsOrDefault loads the configuration when one can be found and
// falls back to the defaults otherwise. A config file that exists but does
// not parse is still an error.
func loadSettingsOrDefault(cmd *cobra.Command, projectDir string) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		found, err := entities.FindConfigFile(projectDir)
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
			return entities.DefaultSettings(), nil
		}
		configPath = found
	}

	logger.Infof("Using config file: %s", configPath)
	return entities.NewSettings(configPath)
}

// projectDirFromArgs returns the positional project directory argument.
func projectDirFromArgs(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
