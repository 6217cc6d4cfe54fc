package internal

import (
	"github.com/rios0rios0/pydist/internal/domain/commands"
	"github.com/rios0rios0/pydist/internal/domain/entities"
	"github.com/rios0rios0/pydist/internal/infrastructure/controllers"
	"github.com/rios0rios0/pydist/internal/infrastructure/repositories"
	"go.uber.org/dig"
)

// RegisterProviders registers all internal providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Layers register bottom-up: repositories, then entities, commands and controllers
	if err := repositories.RegisterProviders(container); err != nil {
		return err
	}
	if err := entities.RegisterProviders(container); err != nil {
		return err
	}
	if err := commands.RegisterProviders(container); err != nil {
		return err
	}
	if err := controllers.RegisterProviders(container); err != nil {
		return err
	}

	// The aggregate the CLI resolves at startup
	if err := container.Provide(NewAppInternal); err != nil {
		return err
	}

	return nil
}
