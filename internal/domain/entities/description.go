package entities

import "strings"

const (
	descriptionHeading = "## Updated Composer Packages"
	sectionPrefix      = "### "
	bulletPrefix       = "- "
	lineBreak          = "\n"
)

// BuildDescription returns the full merge request body: a fixed heading, a
// blank line and the formatted dependency diff.
func BuildDescription(diff DependencyDiff) string {
	return descriptionHeading + lineBreak + lineBreak + FormatDependencyDiff(diff)
}

// FormatDependencyDiff renders the diff as Markdown.
//
// Behaviour:
//   - Sections are rendered in the fixed order "changes", "changes-dev".
//   - A section without entries produces no output, not even its heading.
//   - Each rendered section ends with a blank line.
//   - Package names link to the package page when one is known, and the
//     version pair links to the compare page when one is known.
func FormatDependencyDiff(diff DependencyDiff) string {
	var sb strings.Builder
	for _, name := range diffSections {
		writeSection(&sb, diff.Section(name))
	}
	return sb.String()
}

func writeSection(sb *strings.Builder, section DiffSection) {
	if len(section.Changes) == 0 {
		return
	}

	sb.WriteString(sectionPrefix + section.Name + lineBreak)
	for _, change := range section.Changes {
		sb.WriteString(bulletPrefix + formatPackageName(change) + ": " + formatVersions(change) + lineBreak)
	}
	sb.WriteString(lineBreak)
}

func formatPackageName(change PackageChange) string {
	if change.PackageURL == "" {
		return change.Name
	}
	return "[" + change.Name + "](" + change.PackageURL + ")"
}

func formatVersions(change PackageChange) string {
	span := "`" + change.OldVersion + "..." + change.NewVersion + "`"
	if change.CompareURL == "" {
		return span
	}
	return "[" + span + "](" + change.CompareURL + ")"
}
