//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/pydist/internal/domain/entities"
	builders "github.com/rios0rios0/pydist/test/domain/entitybuilders"
)

func TestPackageDescriptorValidate(t *testing.T) {
	t.Parallel()

	t.Run("should pass for a complete descriptor", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := builders.NewPackageDescriptorBuilder().BuildPackageDescriptor()

		// when
		report := descriptor.Validate()

		// then
		assert.True(t, report.OK())
		assert.Empty(t, report.Errors)
		assert.Empty(t, report.Warnings)
	})

	t.Run("should fail when the name is missing", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := builders.NewPackageDescriptorBuilder().WithName("").BuildPackageDescriptor()

		// when
		report := descriptor.Validate()

		// then
		assert.False(t, report.OK())
		assert.Contains(t, report.Errors, "package name is required")
	})

	t.Run("should fail for an invalid distribution name", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := builders.NewPackageDescriptorBuilder().WithName("-bad-name-").BuildPackageDescriptor()

		// when
		report := descriptor.Validate()

		// then
		assert.False(t, report.OK())
		assert.Contains(t, report.Errors[0], "not a valid distribution name")
	})

	t.Run("should fail when the version is missing", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := builders.NewPackageDescriptorBuilder().WithVersion("").BuildPackageDescriptor()

		// when
		report := descriptor.Validate()

		// then
		assert.False(t, report.OK())
		assert.Contains(t, report.Errors[0], "package version is required")
	})

	t.Run("should warn for a non-release version", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := builders.NewPackageDescriptorBuilder().WithVersion("1.0.0-wip").BuildPackageDescriptor()

		// when
		report := descriptor.Validate()

		// then
		assert.True(t, report.OK())
		assert.Contains(t, report.Warnings[0], "does not look like a release version")
	})

	t.Run("should accept pre-release suffixes", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := builders.NewPackageDescriptorBuilder().WithVersion("1.2.3rc1").BuildPackageDescriptor()

		// when
		report := descriptor.Validate()

		// then
		assert.True(t, report.OK())
		assert.Empty(t, report.Warnings)
	})

	t.Run("should fail for a malformed author email", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := builders.NewPackageDescriptorBuilder().WithAuthorEmail("not-an-address").BuildPackageDescriptor()

		// when
		report := descriptor.Validate()

		// then
		assert.False(t, report.OK())
		assert.Contains(t, report.Errors[0], "is not an email address")
	})

	t.Run("should warn when no packages were discovered", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := builders.NewPackageDescriptorBuilder().WithPackages().BuildPackageDescriptor()

		// when
		report := descriptor.Validate()

		// then
		assert.True(t, report.OK())
		assert.Contains(t, report.Warnings[0], "no import packages discovered")
	})

	t.Run("should collect every violation at once", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := builders.NewPackageDescriptorBuilder().
			WithName("").
			WithVersion("").
			WithAuthorEmail("broken").
			BuildPackageDescriptor()

		// when
		report := descriptor.Validate()

		// then
		assert.Len(t, report.Errors, 3)
	})
}

func TestImportPackageName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "should lowercase and replace hyphens",
			input:    "Acme-Toolkit",
			expected: "acme_toolkit",
		},
		{
			name:     "should replace dots",
			input:    "zope.interface",
			expected: "zope_interface",
		},
		{
			name:     "should keep plain names unchanged",
			input:    "requests",
			expected: "requests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			input := tt.input

			// when
			result := entities.ImportPackageName(input)

			// then
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPackageDescriptorImportName(t *testing.T) {
	t.Parallel()

	t.Run("should derive the import name from the distribution name", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := builders.NewPackageDescriptorBuilder().WithName("acme-toolkit").BuildPackageDescriptor()

		// when
		name := descriptor.ImportName()

		// then
		assert.Equal(t, "acme_toolkit", name)
	})
}
