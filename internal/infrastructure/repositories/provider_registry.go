package repositories

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rios0rios0/composer-update-mr/internal/domain/entities"
	domainRepos "github.com/rios0rios0/composer-update-mr/internal/domain/repositories"
)

var ErrUnsupportedProvider = errors.New("unknown provider type")

// ProviderFactory is a constructor function that creates a MergeRequestRepository
// for one API endpoint.
type ProviderFactory func(cfg entities.ProviderConfig) (domainRepos.MergeRequestRepository, error)

// ProviderRegistry manages all registered merge request provider implementations.
type ProviderRegistry struct {
	providers map[string]ProviderFactory
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
	}
}

// Register adds a provider factory under the given name (e.g. "gitlab").
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// Get returns a configured provider instance for the given name.
func (r *ProviderRegistry) Get(
	name string,
	cfg entities.ProviderConfig,
) (domainRepos.MergeRequestRepository, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, name)
	}
	return factory(cfg)
}

// Names returns the sorted list of registered provider names.
func (r *ProviderRegistry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
