//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/composer-update-mr/internal/domain/entities"
	"github.com/rios0rios0/composer-update-mr/internal/domain/repositories"
)

// SpyMergeRequestRepository implements repositories.MergeRequestRepository as a configurable spy.
type SpyMergeRequestRepository struct {
	ProviderName string

	// --- CreateMergeRequest ---
	CreatedMR   *entities.MergeRequest
	CreateMRErr error
	// spy: inputs received
	ProjectIDs []string
	Drafts     []entities.MergeRequestDraft
}

var _ repositories.MergeRequestRepository = (*SpyMergeRequestRepository)(nil)

func (p *SpyMergeRequestRepository) Name() string { return p.ProviderName }

func (p *SpyMergeRequestRepository) CreateMergeRequest(
	_ context.Context,
	projectID string,
	draft entities.MergeRequestDraft,
) (*entities.MergeRequest, error) {
	p.ProjectIDs = append(p.ProjectIDs, projectID)
	p.Drafts = append(p.Drafts, draft)
	if p.CreateMRErr != nil {
		return nil, p.CreateMRErr
	}
	if p.CreatedMR != nil {
		return p.CreatedMR, nil
	}
	return &entities.MergeRequest{ID: 1, Title: draft.Title, URL: "https://example.com/mr/1"}, nil
}
