package gitlab

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"

	logger "github.com/sirupsen/logrus"
	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/composer-update-mr/internal/domain/entities"
	"github.com/rios0rios0/composer-update-mr/internal/domain/repositories"
)

const providerName = "gitlab"

var (
	errTokenRequired   = errors.New("gitlab private token must be set")
	errBaseURLRequired = errors.New("gitlab base URL must be set")
)

// GitLabMergeRequestRepository implements repositories.MergeRequestRepository
// on top of the GitLab REST API.
type GitLabMergeRequestRepository struct {
	client *gl.Client
}

// NewMergeRequestRepository creates a GitLab client for cfg.BaseURL,
// authenticating with the private token header. Retries are disabled: a
// failed request fails the run.
func NewMergeRequestRepository(cfg entities.ProviderConfig) (repositories.MergeRequestRepository, error) {
	if cfg.Token == "" {
		return nil, errTokenRequired
	}
	if cfg.BaseURL == "" {
		return nil, errBaseURLRequired
	}

	opts := []gl.ClientOptionFunc{
		gl.WithBaseURL(cfg.BaseURL),
		gl.WithoutRetries(),
	}
	if cfg.InsecureSkipVerify {
		logger.Warn("TLS certificate verification is disabled for the GitLab API")
		opts = append(opts, gl.WithHTTPClient(&http.Client{
			Transport: &http.Transport{
				//nolint:gosec // opt-in for self-signed CI instances
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		}))
	}

	client, err := gl.NewClient(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gitlab client: %w", err)
	}
	return &GitLabMergeRequestRepository{client: client}, nil
}

func (p *GitLabMergeRequestRepository) Name() string { return providerName }

// CreateMergeRequest opens a merge request from draft.SourceBranch into
// draft.TargetBranch. An already existing merge request for the same source
// branch is reported as an error like any other API failure.
func (p *GitLabMergeRequestRepository) CreateMergeRequest(
	ctx context.Context,
	projectID string,
	draft entities.MergeRequestDraft,
) (*entities.MergeRequest, error) {
	opts := &gl.CreateMergeRequestOptions{
		Title:        gl.Ptr(draft.Title),
		Description:  gl.Ptr(draft.Description),
		SourceBranch: gl.Ptr(draft.SourceBranch),
		TargetBranch: gl.Ptr(draft.TargetBranch),
	}
	if draft.RemoveSourceBranch {
		opts.RemoveSourceBranch = gl.Ptr(true)
	}

	mr, resp, err := p.client.MergeRequests.CreateMergeRequest(projectID, opts, gl.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusConflict {
			return nil, fmt.Errorf(
				"merge request from %q into %q already exists: %w",
				draft.SourceBranch, draft.TargetBranch, err,
			)
		}
		return nil, fmt.Errorf("failed to create merge request: %w", err)
	}

	return &entities.MergeRequest{
		ID:     int(mr.IID),
		Title:  mr.Title,
		URL:    mr.WebURL,
		Status: mr.State,
	}, nil
}
