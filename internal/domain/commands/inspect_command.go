package commands

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/pydist/internal/domain/entities"
)

// Inspect is the interface for the inspect command.
type Inspect interface {
	Execute(projectDir string, settings *entities.Settings, opts InspectOptions) (string, error)
}

// InspectOptions holds runtime options for an inspection.
type InspectOptions struct {
	RenderScript bool // Render the generated setup.py instead of the YAML view
}

// InspectCommand assembles the descriptor and renders it for inspection.
type InspectCommand struct {
	assemble Assemble
}

// NewInspectCommand creates a new InspectCommand.
func NewInspectCommand(assemble Assemble) *InspectCommand {
	return &InspectCommand{
		assemble: assemble,
	}
}

// Execute returns the rendered descriptor; the caller decides where it goes.
func (it *InspectCommand) Execute(
	projectDir string,
	settings *entities.Settings,
	opts InspectOptions,
) (string, error) {
	projectDir, err := filepath.Abs(projectDir)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	descriptor, assembleErr := it.assemble.Execute(projectDir, settings)
	if assembleErr != nil {
		return "", assembleErr
	}

	if opts.RenderScript {
		return descriptor.RenderSetupScript(), nil
	}

	out, marshalErr := yaml.Marshal(descriptor)
	if marshalErr != nil {
		return "", fmt.Errorf("failed to render the descriptor: %w", marshalErr)
	}
	return string(out), nil
}
