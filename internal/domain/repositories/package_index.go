package repositories

import (
	"context"
)

// PackageIndex looks up published releases of a distribution on a package
// index such as PyPI.
type PackageIndex interface {
	// LatestVersion returns the most recent published release of the
	// named distribution.
	LatestVersion(ctx context.Context, name string) (string, error)
}
