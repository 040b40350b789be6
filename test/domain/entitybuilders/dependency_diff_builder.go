//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/composer-update-mr/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// DependencyDiffBuilder helps create test dependency diffs with a fluent interface.
type DependencyDiffBuilder struct {
	*testkit.BaseBuilder
	changes    []entities.PackageChange
	devChanges []entities.PackageChange
}

// NewDependencyDiffBuilder creates a builder for an empty diff.
func NewDependencyDiffBuilder() *DependencyDiffBuilder {
	return &DependencyDiffBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
	}
}

// WithChange appends a production package change.
func (b *DependencyDiffBuilder) WithChange(
	name, oldVersion, newVersion, compareURL, packageURL string,
) *DependencyDiffBuilder {
	b.changes = append(b.changes, entities.PackageChange{
		Name:       name,
		OldVersion: oldVersion,
		NewVersion: newVersion,
		CompareURL: compareURL,
		PackageURL: packageURL,
	})
	return b
}

// WithDevChange appends a development package change.
func (b *DependencyDiffBuilder) WithDevChange(
	name, oldVersion, newVersion, compareURL, packageURL string,
) *DependencyDiffBuilder {
	b.devChanges = append(b.devChanges, entities.PackageChange{
		Name:       name,
		OldVersion: oldVersion,
		NewVersion: newVersion,
		CompareURL: compareURL,
		PackageURL: packageURL,
	})
	return b
}

// Build creates the diff (satisfies testkit.Builder interface).
func (b *DependencyDiffBuilder) Build() interface{} {
	return b.BuildDependencyDiff()
}

// BuildDependencyDiff creates the diff with a concrete return type.
func (b *DependencyDiffBuilder) BuildDependencyDiff() entities.DependencyDiff {
	return entities.DependencyDiff{
		Sections: []entities.DiffSection{
			{Name: entities.SectionChanges, Changes: append([]entities.PackageChange(nil), b.changes...)},
			{Name: entities.SectionChangesDev, Changes: append([]entities.PackageChange(nil), b.devChanges...)},
		},
	}
}

// BuildJSON renders the diff the way composer-lock-diff --json prints it.
func (b *DependencyDiffBuilder) BuildJSON() string {
	return "{" + sectionJSON(entities.SectionChanges, b.changes) + "," +
		sectionJSON(entities.SectionChangesDev, b.devChanges) + "}"
}

// Reset clears the builder state, allowing it to be reused.
func (b *DependencyDiffBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.changes = nil
	b.devChanges = nil
	return b
}

// Clone creates a deep copy of the DependencyDiffBuilder.
func (b *DependencyDiffBuilder) Clone() testkit.Builder {
	return &DependencyDiffBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		changes:     append([]entities.PackageChange(nil), b.changes...),
		devChanges:  append([]entities.PackageChange(nil), b.devChanges...),
	}
}

func sectionJSON(name string, changes []entities.PackageChange) string {
	if len(changes) == 0 {
		return `"` + name + `":[]`
	}
	out := `"` + name + `":{`
	for i, c := range changes {
		if i > 0 {
			out += ","
		}
		out += `"` + c.Name + `":["` + c.OldVersion + `","` + c.NewVersion + `","` +
			c.CompareURL + `","` + c.PackageURL + `"]`
	}
	return out + "}"
}
