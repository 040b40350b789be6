package repositories

import (
	"context"

	"github.com/rios0rios0/composer-update-mr/internal/domain/entities"
)

// MergeRequestRepository abstracts the merge request API of a Git hosting
// service.
type MergeRequestRepository interface {
	// Name returns the provider identifier (e.g. "gitlab").
	Name() string

	// CreateMergeRequest opens a merge request in the given project.
	CreateMergeRequest(
		ctx context.Context,
		projectID string,
		draft entities.MergeRequestDraft,
	) (*entities.MergeRequest, error)
}
