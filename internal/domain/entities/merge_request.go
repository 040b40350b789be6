package entities

import (
	"time"

	gitforgeEntities "github.com/rios0rios0/gitforge/domain/entities"
	"github.com/valyala/fasttemplate"
)

const (
	branchTimestampLayout = "20060102150405"
	titleTimestampLayout  = "2006-01-02 15:04:05 MST"
)

// MergeRequest is re-exported from gitforge.
type MergeRequest = gitforgeEntities.PullRequest

// MergeRequestDraft is everything needed to open one merge request.
type MergeRequestDraft struct {
	SourceBranch       string `yaml:"source_branch"`
	TargetBranch       string `yaml:"target_branch"`
	Title              string `yaml:"title"`
	Description        string `yaml:"description"`
	RemoveSourceBranch bool   `yaml:"remove_source_branch"`
}

// BranchName returns "<prefix>-<YYYYMMDDHHMMSS>" for the given instant.
func BranchName(prefix string, now time.Time) string {
	return prefix + "-" + now.Format(branchTimestampLayout)
}

// MergeRequestTitle expands the {{operation}} and {{timestamp}} placeholders
// of the title template.
func MergeRequestTitle(template, operation string, now time.Time) string {
	return fasttemplate.ExecuteStringStd(template, "{{", "}}", map[string]any{
		"operation": operation,
		"timestamp": now.Format(titleTimestampLayout),
	})
}

// ProviderConfig carries what a merge request provider needs to talk to its
// API.
type ProviderConfig struct {
	BaseURL            string
	Token              string
	InsecureSkipVerify bool
}
