package entities

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/mod/semver"
)

const (
	SectionChanges    = "changes"
	SectionChangesDev = "changes-dev"

	versionAdded   = "NEW"
	versionRemoved = "REMOVED"
)

// diffSections lists the recognized sections in the order they are rendered.
var diffSections = []string{SectionChanges, SectionChangesDev} //nolint:gochecknoglobals // fixed order

var ErrInvalidDiff = errors.New("invalid dependency diff JSON")

// BumpKind classifies how a package version moved between two lockfiles.
type BumpKind string

const (
	BumpMajor   BumpKind = "major"
	BumpMinor   BumpKind = "minor"
	BumpPatch   BumpKind = "patch"
	BumpAdded   BumpKind = "added"
	BumpRemoved BumpKind = "removed"
	BumpOther   BumpKind = "other"
)

// PackageChange is a single before/after version pair of a locked package.
type PackageChange struct {
	Name       string
	OldVersion string
	NewVersion string
	CompareURL string // empty when no compare link is known
	PackageURL string // empty when no package page is known
}

// Bump reports which semantic version component changed.
func (c PackageChange) Bump() BumpKind {
	switch {
	case c.OldVersion == versionAdded:
		return BumpAdded
	case c.NewVersion == versionRemoved:
		return BumpRemoved
	}

	oldVer, newVer := canonicalVersion(c.OldVersion), canonicalVersion(c.NewVersion)
	if !semver.IsValid(oldVer) || !semver.IsValid(newVer) {
		return BumpOther
	}

	switch {
	case semver.Major(oldVer) != semver.Major(newVer):
		return BumpMajor
	case semver.MajorMinor(oldVer) != semver.MajorMinor(newVer):
		return BumpMinor
	case semver.Compare(oldVer, newVer) != 0:
		return BumpPatch
	default:
		return BumpOther
	}
}

// DiffSection groups the package changes of one lockfile section.
type DiffSection struct {
	Name    string
	Changes []PackageChange
}

// DependencyDiff is the structured comparison produced by composer-lock-diff.
// Sections and packages keep the order of the source document.
type DependencyDiff struct {
	Sections []DiffSection
}

// Section returns the section with the given name, or an empty one.
func (d DependencyDiff) Section(name string) DiffSection {
	for _, section := range d.Sections {
		if section.Name == name {
			return section
		}
	}
	return DiffSection{Name: name}
}

// Len returns the number of package changes across all sections.
func (d DependencyDiff) Len() int {
	total := 0
	for _, section := range d.Sections {
		total += len(section.Changes)
	}
	return total
}

// CountBumps tallies the package changes per bump kind.
func (d DependencyDiff) CountBumps() map[BumpKind]int {
	counts := make(map[BumpKind]int)
	for _, section := range d.Sections {
		for _, change := range section.Changes {
			counts[change.Bump()]++
		}
	}
	return counts
}

// ParseDependencyDiff decodes the JSON output of `composer-lock-diff --json`.
// Each package maps to an array of [old, new, compareUrl, packageUrl] where
// the trailing elements may be missing. Unknown top-level keys are ignored.
func ParseDependencyDiff(data []byte) (DependencyDiff, error) {
	if !gjson.ValidBytes(data) {
		return DependencyDiff{}, ErrInvalidDiff
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() && !root.IsArray() {
		return DependencyDiff{}, ErrInvalidDiff
	}

	diff := DependencyDiff{Sections: make([]DiffSection, 0, len(diffSections))}
	for _, name := range diffSections {
		diff.Sections = append(diff.Sections, parseSection(name, root.Get(name)))
	}
	return diff, nil
}

// parseSection reads one section. PHP encodes an empty map as `[]`, which
// yields no entries here.
func parseSection(name string, value gjson.Result) DiffSection {
	section := DiffSection{Name: name}
	if !value.IsObject() {
		return section
	}

	value.ForEach(func(key, entry gjson.Result) bool {
		fields := entry.Array()
		section.Changes = append(section.Changes, PackageChange{
			Name:       key.String(),
			OldVersion: fieldAt(fields, 0),
			NewVersion: fieldAt(fields, 1),
			CompareURL: fieldAt(fields, 2), //nolint:mnd // compare URL position
			PackageURL: fieldAt(fields, 3), //nolint:mnd // package URL position
		})
		return true
	})
	return section
}

func fieldAt(fields []gjson.Result, idx int) string {
	if idx >= len(fields) {
		return ""
	}
	return fields[idx].String()
}

// canonicalVersion turns Composer versions like "1.2.3" or "v1.2.3" into the
// "v"-prefixed form understood by the semver package.
func canonicalVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
