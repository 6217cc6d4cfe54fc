package controllers

import (
	"github.com/rios0rios0/pydist/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	constructors := []interface{}{
		NewBuildController,
		NewInspectController,
		NewCheckController,
		NewOutdatedController,
		NewReleaseController,
		NewInitController,
		NewControllers,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	buildController *BuildController,
	inspectController *InspectController,
	checkController *CheckController,
	outdatedController *OutdatedController,
	releaseController *ReleaseController,
	initController *InitController,
) *[]entities.Controller {
	return &[]entities.Controller{
		buildController,
		inspectController,
		checkController,
		outdatedController,
		releaseController,
		initController,
	}
}
