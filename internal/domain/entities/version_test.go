//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pydist/internal/domain/entities"
)

func TestBumpVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		current  string
		level    string
		expected string
	}{
		{
			name:     "should bump the major part and reset the rest",
			current:  "1.4.2",
			level:    entities.BumpMajor,
			expected: "2.0.0",
		},
		{
			name:     "should bump the minor part and reset patch",
			current:  "1.4.2",
			level:    entities.BumpMinor,
			expected: "1.5.0",
		},
		{
			name:     "should bump the patch part",
			current:  "1.4.2",
			level:    entities.BumpPatch,
			expected: "1.4.3",
		},
		{
			name:     "should strip a leading v",
			current:  "v1.4.2",
			level:    entities.BumpPatch,
			expected: "1.4.3",
		},
		{
			name:     "should treat missing parts as zero",
			current:  "2",
			level:    entities.BumpMinor,
			expected: "2.1.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			current := tt.current

			// when
			result, err := entities.BumpVersion(current, tt.level)

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}

	t.Run("should fail on an empty version", func(t *testing.T) {
		t.Parallel()

		// given
		current := ""

		// when
		_, err := entities.BumpVersion(current, entities.BumpPatch)

		// then
		require.Error(t, err)
	})

	t.Run("should fail on a non-numeric version", func(t *testing.T) {
		t.Parallel()

		// given
		current := "1.banana.3"

		// when
		_, err := entities.BumpVersion(current, entities.BumpPatch)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not numeric")
	})

	t.Run("should fail on an unknown bump level", func(t *testing.T) {
		t.Parallel()

		// given
		current := "1.0.0"

		// when
		_, err := entities.BumpVersion(current, "mega")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown bump level")
	})
}

func TestIsNewerVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		current   string
		candidate string
		expected  bool
	}{
		{
			name:      "should detect a newer patch release",
			current:   "1.2.3",
			candidate: "1.2.4",
			expected:  true,
		},
		{
			name:      "should detect a newer major release",
			current:   "1.9.9",
			candidate: "2.0.0",
			expected:  true,
		},
		{
			name:      "should reject an older candidate",
			current:   "2.0.0",
			candidate: "1.9.9",
			expected:  false,
		},
		{
			name:      "should reject an equal candidate",
			current:   "1.2.3",
			candidate: "1.2.3",
			expected:  false,
		},
		{
			name:      "should compare mixed v-prefixed versions",
			current:   "v1.2.3",
			candidate: "1.3.0",
			expected:  true,
		},
		{
			name:      "should fall back to string comparison for non-semver values",
			current:   "2026.08.24",
			candidate: "2026.08.25",
			expected:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			current, candidate := tt.current, tt.candidate

			// when
			result := entities.IsNewerVersion(current, candidate)

			// then
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSortVersionsDescending(t *testing.T) {
	t.Parallel()

	t.Run("should order semver tags newest first", func(t *testing.T) {
		t.Parallel()

		// given
		versions := []string{"v1.2.0", "v1.10.0", "v1.9.1", "v0.3.0"}

		// when
		entities.SortVersionsDescending(versions)

		// then
		assert.Equal(t, []string{"v1.10.0", "v1.9.1", "v1.2.0", "v0.3.0"}, versions)
	})

	t.Run("should order unprefixed versions", func(t *testing.T) {
		t.Parallel()

		// given
		versions := []string{"1.0.0", "2.0.0", "1.5.0"}

		// when
		entities.SortVersionsDescending(versions)

		// then
		assert.Equal(t, []string{"2.0.0", "1.5.0", "1.0.0"}, versions)
	})
}

func TestAnalyzeVersionDiff(t *testing.T) {
	t.Parallel()

	t.Run("should flag a major difference", func(t *testing.T) {
		t.Parallel()

		// given
		current, available := "1.2.3", "2.0.0"

		// when
		diff := entities.AnalyzeVersionDiff(current, available)

		// then
		assert.True(t, diff.IsMajor)
		assert.False(t, diff.IsMinor)
		assert.False(t, diff.IsPatch)
	})

	t.Run("should flag a minor difference", func(t *testing.T) {
		t.Parallel()

		// given
		current, available := "1.2.3", "1.3.0"

		// when
		diff := entities.AnalyzeVersionDiff(current, available)

		// then
		assert.True(t, diff.IsMinor)
		assert.False(t, diff.IsMajor)
	})

	t.Run("should flag a patch difference", func(t *testing.T) {
		t.Parallel()

		// given
		current, available := "1.2.3", "1.2.4"

		// when
		diff := entities.AnalyzeVersionDiff(current, available)

		// then
		assert.True(t, diff.IsPatch)
	})

	t.Run("should set no flags for non-semver values", func(t *testing.T) {
		t.Parallel()

		// given
		current, available := "latest", "stable"

		// when
		diff := entities.AnalyzeVersionDiff(current, available)

		// then
		assert.False(t, diff.IsMajor)
		assert.False(t, diff.IsMinor)
		assert.False(t, diff.IsPatch)
		assert.Equal(t, "latest", diff.Current)
		assert.Equal(t, "stable", diff.Available)
	})
}
