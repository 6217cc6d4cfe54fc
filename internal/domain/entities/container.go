package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
// Settings is deliberately not registered here: it is loaded from the
// resolved config file path by the controllers layer.
func RegisterProviders(container *dig.Container) error {
	return nil
}
