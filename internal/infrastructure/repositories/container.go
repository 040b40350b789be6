package repositories

import (
	"github.com/spf13/afero"
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/composer-update-mr/internal/domain/repositories"
	"github.com/rios0rios0/composer-update-mr/internal/infrastructure/repositories/gitlab"
	"github.com/rios0rios0/composer-update-mr/internal/infrastructure/repositories/gitrepo"
	"github.com/rios0rios0/composer-update-mr/internal/infrastructure/repositories/shell"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register provider registry with all merge request providers
	if err := container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register("gitlab", gitlab.NewMergeRequestRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.CommandRepository {
		return shell.NewCommandRepository("")
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.OriginRepository {
		return gitrepo.NewOriginRepository()
	}); err != nil {
		return err
	}

	if err := container.Provide(afero.NewOsFs); err != nil {
		return err
	}

	return nil
}
