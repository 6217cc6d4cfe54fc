package entities

import (
	"fmt"
	"regexp"
	"strings"
)

// distNamePattern matches valid Python distribution names (PEP 508):
// start and end alphanumeric, dots/hyphens/underscores allowed in between.
var distNamePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// releaseVersionPattern matches PEP 440 release versions with the common
// pre/post/dev suffixes. Anything else is flagged as a warning, not an error.
var releaseVersionPattern = regexp.MustCompile(
	`^[0-9]+(\.[0-9]+)*((a|b|rc)[0-9]+)?(\.post[0-9]+)?(\.dev[0-9]+)?$`,
)

// PackageDescriptor is the complete description of a Python distribution
// package: the metadata, the discovered import packages, and the runtime
// requirements carried verbatim from the manifest.
//
// A descriptor is assembled exactly once per invocation and passed by value
// afterwards. Nothing mutates it after assembly.
type PackageDescriptor struct {
	Name               string   `yaml:"name"`                 // Distribution name as published to an index
	SourceURL          string   `yaml:"source_url"`           // Project home / repository URL
	Version            string   `yaml:"version"`              // Release version
	Author             string   `yaml:"author"`               // Author display name
	AuthorEmail        string   `yaml:"author_email"`         // Author contact address
	Description        string   `yaml:"description"`          // One-line summary
	Packages           []string `yaml:"packages"`             // Dotted import packages, sorted
	Requirements       []string `yaml:"requirements"`         // Manifest lines, order preserved
	IncludePackageData bool     `yaml:"include_package_data"` // Ship non-code package assets
}

// ValidationReport collects the outcome of descriptor validation.
// Errors block a build; warnings are logged and tolerated.
type ValidationReport struct {
	Errors   []string
	Warnings []string
}

// OK returns true when the descriptor has no blocking errors.
func (r ValidationReport) OK() bool {
	return len(r.Errors) == 0
}

// Validate checks the descriptor against the packaging rules and returns
// every violation at once, so the user can fix the whole config in one pass.
func (it PackageDescriptor) Validate() ValidationReport {
	var report ValidationReport

	if it.Name == "" {
		report.Errors = append(report.Errors, "package name is required")
	} else if !distNamePattern.MatchString(it.Name) {
		report.Errors = append(report.Errors, fmt.Sprintf(
			"package name %q is not a valid distribution name", it.Name,
		))
	}

	if it.Version == "" {
		report.Errors = append(report.Errors,
			"package version is required (set package.version or tag the repository)")
	} else if !releaseVersionPattern.MatchString(it.Version) {
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"version %q does not look like a release version", it.Version,
		))
	}

	if it.AuthorEmail != "" && !strings.Contains(it.AuthorEmail, "@") {
		report.Errors = append(report.Errors, fmt.Sprintf(
			"author email %q is not an email address", it.AuthorEmail,
		))
	}

	if len(it.Packages) == 0 {
		report.Warnings = append(report.Warnings,
			"no import packages discovered; the distribution will carry no code")
	}

	return report
}

// ImportName returns the canonical import package name derived from the
// distribution name.
func (it PackageDescriptor) ImportName() string {
	return ImportPackageName(it.Name)
}

// ImportPackageName converts a distribution name to an importable package
// name (lowercased, hyphens and dots replaced by underscores).
func ImportPackageName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "-", "_")
	return strings.ReplaceAll(name, ".", "_")
}
