//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/pydist/internal/domain/repositories"
)

// StubPackageIndex implements repositories.PackageIndex over a fixed version map.
type StubPackageIndex struct {
	// Versions maps distribution name to its latest release.
	Versions map[string]string

	// LookupErr, when set, fails every lookup.
	LookupErr error

	// LookedUp records the names queried, in order.
	LookedUp []string
}

var _ repositories.PackageIndex = (*StubPackageIndex)(nil)

func (i *StubPackageIndex) LatestVersion(_ context.Context, name string) (string, error) {
	i.LookedUp = append(i.LookedUp, name)
	if i.LookupErr != nil {
		return "", i.LookupErr
	}
	if version, ok := i.Versions[name]; ok {
		return version, nil
	}
	return "", fmt.Errorf("distribution %q not found on the index", name)
}
