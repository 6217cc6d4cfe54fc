package repositories

import (
	"fmt"
	"sort"
	"strings"

	domainRepos "github.com/rios0rios0/pydist/internal/domain/repositories"
)

// BackendRegistry manages all registered build backend implementations.
type BackendRegistry struct {
	backends map[string]domainRepos.BuildBackend
}

// NewBackendRegistry creates an empty backend registry.
func NewBackendRegistry() *BackendRegistry {
	return &BackendRegistry{
		backends: make(map[string]domainRepos.BuildBackend),
	}
}

// Register adds a backend under its name.
func (r *BackendRegistry) Register(backend domainRepos.BuildBackend) {
	r.backends[backend.Name()] = backend
}

// Get returns the backend with the given name.
func (r *BackendRegistry) Get(name string) (domainRepos.BuildBackend, error) {
	backend, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf(
			"unknown build backend %q (known: %s)",
			name, strings.Join(r.Names(), ", "),
		)
	}
	return backend, nil
}

// Names returns the sorted list of registered backend names.
func (r *BackendRegistry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
