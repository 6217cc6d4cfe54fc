package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	constructors := []interface{}{
		NewAssembleCommand,
		NewBuildCommand,
		NewInspectCommand,
		NewCheckCommand,
		NewOutdatedCommand,
		NewReleaseCommand,
		NewInitCommand,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	bindings := []interface{}{
		func(impl *AssembleCommand) Assemble { return impl },
		func(impl *BuildCommand) Build { return impl },
		func(impl *InspectCommand) Inspect { return impl },
		func(impl *CheckCommand) Check { return impl },
		func(impl *OutdatedCommand) Outdated { return impl },
		func(impl *ReleaseCommand) Release { return impl },
		func(impl *InitCommand) Init { return impl },
	}
	for _, binding := range bindings {
		if err := container.Provide(binding); err != nil {
			return err
		}
	}

	return nil
}
