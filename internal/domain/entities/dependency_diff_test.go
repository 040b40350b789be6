//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/composer-update-mr/internal/domain/entities"
)

func TestParseDependencyDiff(t *testing.T) {
	t.Parallel()

	t.Run("should keep the package order of the source document", func(t *testing.T) {
		t.Parallel()

		// given
		data := []byte(`{
			"changes": {"zeta/z": ["1.0.0", "1.1.0", ""], "alpha/a": ["2.0.0", "2.0.1", ""]},
			"changes-dev": {"mid/m": ["NEW", "0.1.0", ""]}
		}`)

		// when
		diff, err := entities.ParseDependencyDiff(data)

		// then
		require.NoError(t, err)
		changes := diff.Section(entities.SectionChanges).Changes
		require.Len(t, changes, 2)
		assert.Equal(t, "zeta/z", changes[0].Name)
		assert.Equal(t, "alpha/a", changes[1].Name)
		assert.Equal(t, "mid/m", diff.Section(entities.SectionChangesDev).Changes[0].Name)
		assert.Equal(t, 3, diff.Len())
	})

	t.Run("should read compare and package URLs when present", func(t *testing.T) {
		t.Parallel()

		// given
		data := []byte(`{"changes": {"foo": ["v1.0", "v1.1", "https://x/compare", "https://x/pkg"]}}`)

		// when
		diff, err := entities.ParseDependencyDiff(data)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.PackageChange{
			Name:       "foo",
			OldVersion: "v1.0",
			NewVersion: "v1.1",
			CompareURL: "https://x/compare",
			PackageURL: "https://x/pkg",
		}, diff.Section(entities.SectionChanges).Changes[0])
	})

	t.Run("should default missing trailing elements to empty strings", func(t *testing.T) {
		t.Parallel()

		// given
		data := []byte(`{"changes": {"foo": ["1.0", "2.0"]}}`)

		// when
		diff, err := entities.ParseDependencyDiff(data)

		// then
		require.NoError(t, err)
		change := diff.Section(entities.SectionChanges).Changes[0]
		assert.Empty(t, change.CompareURL)
		assert.Empty(t, change.PackageURL)
	})

	t.Run("should treat an empty JSON array as an empty section", func(t *testing.T) {
		t.Parallel()

		// given
		data := []byte(`{"changes": [], "changes-dev": {"bar": ["1", "2", ""]}}`)

		// when
		diff, err := entities.ParseDependencyDiff(data)

		// then
		require.NoError(t, err)
		assert.Empty(t, diff.Section(entities.SectionChanges).Changes)
		assert.Len(t, diff.Section(entities.SectionChangesDev).Changes, 1)
	})

	t.Run("should ignore unknown top-level keys", func(t *testing.T) {
		t.Parallel()

		// given
		data := []byte(`{"unknown": {"x": ["1", "2"]}}`)

		// when
		diff, err := entities.ParseDependencyDiff(data)

		// then
		require.NoError(t, err)
		assert.Zero(t, diff.Len())
	})

	t.Run("should return an error for invalid JSON", func(t *testing.T) {
		t.Parallel()

		// given
		data := []byte(`Loading composer repositories...`)

		// when
		_, err := entities.ParseDependencyDiff(data)

		// then
		require.ErrorIs(t, err, entities.ErrInvalidDiff)
	})
}

func TestPackageChangeBump(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		change   entities.PackageChange
		expected entities.BumpKind
	}{
		{
			name:     "should classify a major bump",
			change:   entities.PackageChange{OldVersion: "1.9.0", NewVersion: "2.0.0"},
			expected: entities.BumpMajor,
		},
		{
			name:     "should classify a minor bump with v prefixes",
			change:   entities.PackageChange{OldVersion: "v1.0", NewVersion: "v1.1"},
			expected: entities.BumpMinor,
		},
		{
			name:     "should classify a patch bump",
			change:   entities.PackageChange{OldVersion: "3.4.5", NewVersion: "3.4.6"},
			expected: entities.BumpPatch,
		},
		{
			name:     "should classify an added package",
			change:   entities.PackageChange{OldVersion: "NEW", NewVersion: "0.0.1"},
			expected: entities.BumpAdded,
		},
		{
			name:     "should classify a removed package",
			change:   entities.PackageChange{OldVersion: "9.9.9", NewVersion: "REMOVED"},
			expected: entities.BumpRemoved,
		},
		{
			name:     "should classify branch versions as other",
			change:   entities.PackageChange{OldVersion: "dev-main abc123", NewVersion: "dev-main def456"},
			expected: entities.BumpOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			result := tt.change.Bump()

			// then
			assert.Equal(t, tt.expected, result)
		})
	}
}
