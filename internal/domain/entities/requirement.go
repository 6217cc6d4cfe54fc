package entities

import (
	"strings"
)

// Requirement is a single dependency read from the manifest.
type Requirement struct {
	Name       string   // Distribution name as written
	Extras     []string // Optional extras from name[extra1,extra2]
	Constraint string   // Version specifier tail ("==1.2.3", ">=2,<3"), may be empty
	Marker     string   // Environment marker after ';', may be empty
	Raw        string   // The full stripped manifest line
	Line       int      // Line number in the manifest file
}

// PinnedVersion returns the exact version when the requirement is a single
// "==" pin, and false otherwise. Range constraints and unpinned requirements
// have no single version to compare against an index.
func (it Requirement) PinnedVersion() (string, bool) {
	constraint := strings.TrimSpace(it.Constraint)
	if !strings.HasPrefix(constraint, "==") {
		return "", false
	}
	version := strings.TrimSpace(strings.TrimPrefix(constraint, "=="))
	if version == "" || strings.ContainsAny(version, ",<>!~=") {
		return "", false
	}
	return version, true
}
