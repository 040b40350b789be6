//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/composer-update-mr/internal/domain/repositories"
)

// StubOriginRepository is a stub implementation of repositories.OriginRepository.
type StubOriginRepository struct {
	URL       string
	Err       error
	CallCount int
}

var _ repositories.OriginRepository = (*StubOriginRepository)(nil)

func (s *StubOriginRepository) OriginURL(_ context.Context, _ string) (string, error) {
	s.CallCount++
	return s.URL, s.Err
}
