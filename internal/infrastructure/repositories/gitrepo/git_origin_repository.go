package gitrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"

	"github.com/rios0rios0/composer-update-mr/internal/domain/repositories"
)

const originRemote = "origin"

var errNoOriginURL = errors.New("origin remote has no URL")

// GitOriginRepository reads remote configuration straight from the .git
// directory, without spawning git.
type GitOriginRepository struct{}

// NewOriginRepository creates a new GitOriginRepository.
func NewOriginRepository() repositories.OriginRepository {
	return &GitOriginRepository{}
}

// OriginURL opens the repository containing dir (walking up to find .git)
// and returns the first URL of its "origin" remote.
func (it *GitOriginRepository) OriginURL(_ context.Context, dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("failed to open git repository at %q: %w", dir, err)
	}

	remote, err := repo.Remote(originRemote)
	if err != nil {
		return "", fmt.Errorf("failed to read %q remote: %w", originRemote, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", errNoOriginURL
	}
	return urls[0], nil
}
