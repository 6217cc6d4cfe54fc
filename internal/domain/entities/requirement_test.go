//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	builders "github.com/rios0rios0/pydist/test/domain/entitybuilders"
)

func TestRequirementPinnedVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		constraint string
		expected   string
		pinned     bool
	}{
		{
			name:       "should return the version for a double-equals pin",
			constraint: "==1.2.3",
			expected:   "1.2.3",
			pinned:     true,
		},
		{
			name:       "should tolerate spaces around the pin",
			constraint: " == 2.31.0 ",
			expected:   "2.31.0",
			pinned:     true,
		},
		{
			name:       "should reject an unpinned requirement",
			constraint: "",
			pinned:     false,
		},
		{
			name:       "should reject a minimum constraint",
			constraint: ">=1.0",
			pinned:     false,
		},
		{
			name:       "should reject a compatible-release constraint",
			constraint: "~=1.4",
			pinned:     false,
		},
		{
			name:       "should reject a range constraint",
			constraint: "==1.2.3,<2",
			pinned:     false,
		},
		{
			name:       "should reject a bare double-equals",
			constraint: "==",
			pinned:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			requirement := builders.NewRequirementBuilder().
				WithConstraint(tt.constraint).
				BuildRequirement()

			// when
			version, ok := requirement.PinnedVersion()

			// then
			assert.Equal(t, tt.pinned, ok)
			assert.Equal(t, tt.expected, version)
		})
	}
}
