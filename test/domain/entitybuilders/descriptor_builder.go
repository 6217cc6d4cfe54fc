//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/pydist/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// PackageDescriptorBuilder helps create test descriptors with a fluent interface.
type PackageDescriptorBuilder struct {
	*testkit.BaseBuilder
	name         string
	sourceURL    string
	version      string
	author       string
	authorEmail  string
	description  string
	packages     []string
	requirements []string
}

// NewPackageDescriptorBuilder creates a new descriptor builder with sensible defaults.
func NewPackageDescriptorBuilder() *PackageDescriptorBuilder {
	return &PackageDescriptorBuilder{
		BaseBuilder:  testkit.NewBaseBuilder(),
		name:         "acme-toolkit",
		sourceURL:    "https://github.com/acme/toolkit",
		version:      "1.4.0",
		author:       "Jane Doe",
		authorEmail:  "jane@acme.io",
		description:  "Utilities for the Acme platform",
		packages:     []string{"acme_toolkit", "acme_toolkit.cli"},
		requirements: []string{"requests==2.32.0", "click>=8.0"},
	}
}

// WithName sets the distribution name.
func (b *PackageDescriptorBuilder) WithName(name string) *PackageDescriptorBuilder {
	b.name = name
	return b
}

// WithSourceURL sets the project URL.
func (b *PackageDescriptorBuilder) WithSourceURL(url string) *PackageDescriptorBuilder {
	b.sourceURL = url
	return b
}

// WithVersion sets the release version.
func (b *PackageDescriptorBuilder) WithVersion(version string) *PackageDescriptorBuilder {
	b.version = version
	return b
}

// WithAuthor sets the author display name.
func (b *PackageDescriptorBuilder) WithAuthor(author string) *PackageDescriptorBuilder {
	b.author = author
	return b
}

// WithAuthorEmail sets the author contact address.
func (b *PackageDescriptorBuilder) WithAuthorEmail(email string) *PackageDescriptorBuilder {
	b.authorEmail = email
	return b
}

// WithDescription sets the one-line summary.
func (b *PackageDescriptorBuilder) WithDescription(description string) *PackageDescriptorBuilder {
	b.description = description
	return b
}

// WithPackages sets the discovered import packages.
func (b *PackageDescriptorBuilder) WithPackages(packages ...string) *PackageDescriptorBuilder {
	b.packages = packages
	return b
}

// WithRequirements sets the manifest requirement lines.
func (b *PackageDescriptorBuilder) WithRequirements(requirements ...string) *PackageDescriptorBuilder {
	b.requirements = requirements
	return b
}

// Build creates the descriptor (satisfies testkit.Builder interface).
func (b *PackageDescriptorBuilder) Build() interface{} {
	return b.BuildPackageDescriptor()
}

// BuildPackageDescriptor creates the descriptor with a concrete return type.
func (b *PackageDescriptorBuilder) BuildPackageDescriptor() entities.PackageDescriptor {
	return entities.PackageDescriptor{
		Name:               b.name,
		SourceURL:          b.sourceURL,
		Version:            b.version,
		Author:             b.author,
		AuthorEmail:        b.authorEmail,
		Description:        b.description,
		Packages:           b.packages,
		Requirements:       b.requirements,
		IncludePackageData: true,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *PackageDescriptorBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "acme-toolkit"
	b.sourceURL = "https://github.com/acme/toolkit"
	b.version = "1.4.0"
	b.author = "Jane Doe"
	b.authorEmail = "jane@acme.io"
	b.description = "Utilities for the Acme platform"
	b.packages = []string{"acme_toolkit", "acme_toolkit.cli"}
	b.requirements = []string{"requests==2.32.0", "click>=8.0"}
	return b
}

// Clone creates a deep copy of the PackageDescriptorBuilder.
func (b *PackageDescriptorBuilder) Clone() testkit.Builder {
	packages := make([]string, len(b.packages))
	copy(packages, b.packages)
	requirements := make([]string, len(b.requirements))
	copy(requirements, b.requirements)

	return &PackageDescriptorBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:         b.name,
		sourceURL:    b.sourceURL,
		version:      b.version,
		author:       b.author,
		authorEmail:  b.authorEmail,
		description:  b.description,
		packages:     packages,
		requirements: requirements,
	}
}
