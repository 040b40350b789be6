//go:build unit

package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/composer-update-mr/internal/domain/entities"
	"github.com/rios0rios0/composer-update-mr/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/composer-update-mr/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/composer-update-mr/test/infrastructure/repositorydoubles"
)

func TestProviderRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should build the registered provider with the given config", func(t *testing.T) {
		t.Parallel()

		// given
		var received entities.ProviderConfig
		spy := &doubles.SpyMergeRequestRepository{ProviderName: "gitlab"}
		registry := infraRepos.NewProviderRegistry()
		registry.Register("gitlab", func(cfg entities.ProviderConfig) (repositories.MergeRequestRepository, error) {
			received = cfg
			return spy, nil
		})
		cfg := entities.ProviderConfig{BaseURL: "https://gitlab.example.com", Token: "tok"}

		// when
		provider, err := registry.Get("gitlab", cfg)

		// then
		require.NoError(t, err)
		assert.Same(t, spy, provider)
		assert.Equal(t, cfg, received)
	})

	t.Run("should return an error for an unknown provider", func(t *testing.T) {
		t.Parallel()

		// given
		registry := infraRepos.NewProviderRegistry()

		// when
		provider, err := registry.Get("bitbucket", entities.ProviderConfig{})

		// then
		assert.Nil(t, provider)
		require.ErrorIs(t, err, infraRepos.ErrUnsupportedProvider)
	})

	t.Run("should list registered names in order", func(t *testing.T) {
		t.Parallel()

		// given
		registry := infraRepos.NewProviderRegistry()
		factory := func(_ entities.ProviderConfig) (repositories.MergeRequestRepository, error) { return nil, nil }
		registry.Register("gitlab", factory)
		registry.Register("github", factory)

		// when
		names := registry.Names()

		// then
		assert.Equal(t, []string{"github", "gitlab"}, names)
	})
}
