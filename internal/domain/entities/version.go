package entities

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Bump levels accepted by the release flow.
const (
	BumpMajor = "major"
	BumpMinor = "minor"
	BumpPatch = "patch"
)

// IsNewerVersion compares two version strings and returns true if candidate
// is newer than current. Both are compared as semver when possible, with a
// plain string comparison as the fallback for non-semver values.
func IsNewerVersion(current, candidate string) bool {
	currentNorm := normalizeVersion(current)
	candidateNorm := normalizeVersion(candidate)

	if semver.IsValid(currentNorm) && semver.IsValid(candidateNorm) {
		return semver.Compare(candidateNorm, currentNorm) > 0
	}

	return candidate > current
}

// SortVersionsDescending orders version strings newest first, using semver
// ordering where valid and string ordering otherwise.
func SortVersionsDescending(versions []string) {
	sort.Slice(versions, func(i, j int) bool {
		vi := normalizeVersion(versions[i])
		vj := normalizeVersion(versions[j])
		if semver.IsValid(vi) && semver.IsValid(vj) {
			return semver.Compare(vi, vj) > 0
		}
		return versions[i] > versions[j]
	})
}

// BumpVersion computes the next version from current for the given level.
// The current version must carry numeric dot-separated parts; missing minor
// or patch parts are treated as zero.
func BumpVersion(current, level string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(current), "v")
	if trimmed == "" {
		return "", fmt.Errorf("cannot bump empty version")
	}

	parts := strings.Split(trimmed, ".")
	nums := make([]int, 3)
	for i := 0; i < len(nums) && i < len(parts); i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return "", fmt.Errorf("version %q is not numeric: %w", current, err)
		}
		nums[i] = n
	}

	switch level {
	case BumpMajor:
		nums[0]++
		nums[1] = 0
		nums[2] = 0
	case BumpMinor:
		nums[1]++
		nums[2] = 0
	case BumpPatch:
		nums[2]++
	default:
		return "", fmt.Errorf("unknown bump level %q (use major, minor or patch)", level)
	}

	return fmt.Sprintf("%d.%d.%d", nums[0], nums[1], nums[2]), nil
}

// VersionDiff classifies the gap between a current and an available version.
type VersionDiff struct {
	Current   string
	Available string
	IsMajor   bool
	IsMinor   bool
	IsPatch   bool
}

// AnalyzeVersionDiff determines the type of version change. Non-semver
// versions yield a diff with no type flags set.
func AnalyzeVersionDiff(current, available string) VersionDiff {
	diff := VersionDiff{
		Current:   current,
		Available: available,
	}

	currentNorm := normalizeVersion(current)
	availableNorm := normalizeVersion(available)

	if !semver.IsValid(currentNorm) || !semver.IsValid(availableNorm) {
		return diff
	}

	if semver.Major(currentNorm) != semver.Major(availableNorm) {
		diff.IsMajor = true
		return diff
	}

	// The semver package has no Minor helper, so split the release parts.
	currentParts := strings.Split(strings.TrimPrefix(currentNorm, "v"), ".")
	availableParts := strings.Split(strings.TrimPrefix(availableNorm, "v"), ".")

	if len(currentParts) >= 2 && len(availableParts) >= 2 &&
		currentParts[1] != availableParts[1] {
		diff.IsMinor = true
		return diff
	}

	diff.IsPatch = true
	return diff
}

// normalizeVersion ensures the version has a 'v' prefix for semver compatibility.
func normalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
