package entities

import (
	"strings"
)

// Artifact kinds produced by the packaging toolchain.
const (
	ArtifactWheel = "wheel"
	ArtifactSdist = "sdist"
)

// BuildArtifact is one distribution file produced by a build backend.
type BuildArtifact struct {
	Path string // Absolute path to the artifact
	Kind string // ArtifactWheel or ArtifactSdist
	Size int64  // Size in bytes
}

// ArtifactKind classifies a distribution file by its name, returning the
// empty string for files that are not distribution artifacts.
func ArtifactKind(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".whl"):
		return ArtifactWheel
	case strings.HasSuffix(filename, ".tar.gz"), strings.HasSuffix(filename, ".zip"):
		return ArtifactSdist
	default:
		return ""
	}
}
