package main

import (
	"github.com/rios0rios0/pydist/internal"
	"github.com/rios0rios0/pydist/internal/infrastructure/controllers"
	"go.uber.org/dig"
)

func injectAppContext() *internal.AppInternal {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	// Invoke to get AppInternal
	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		panic(err)
	}

	return appInternal
}

func injectBuildController() *controllers.BuildController {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var buildController *controllers.BuildController
	if err := container.Invoke(func(bc *controllers.BuildController) {
		buildController = bc
	}); err != nil {
		panic(err)
	}

	return buildController
}
