package repositories

import (
	"fmt"

	domainRepos "github.com/rios0rios0/pydist/internal/domain/repositories"
)

// ProviderFactory builds a hosting provider bound to an auth token. Factories
// must not talk to the network; the token may still be empty when the caller
// only needs URL matching.
type ProviderFactory func(token string) domainRepos.ProviderRepository

// ProviderRegistry holds the Git hosting providers the release flow can open
// pull requests against, keyed by the provider name parsed from the origin
// remote ("github", "gitlab", "azuredevops").
type ProviderRegistry struct {
	factories map[string]ProviderFactory
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{factories: make(map[string]ProviderFactory)}
}

// Register adds a provider factory under the given name.
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.factories[name] = factory
}

// Get constructs the named provider with the given token.
func (r *ProviderRegistry) Get(name, token string) (domainRepos.ProviderRepository, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider type: %q", name)
	}
	return factory(token), nil
}

// Names returns the registered provider names.
func (r *ProviderRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}
