//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations — no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"strings"

	"github.com/rios0rios0/composer-update-mr/internal/domain/entities"
	"github.com/rios0rios0/composer-update-mr/internal/domain/repositories"
)

// CommandStub answers every command line starting with Prefix.
type CommandStub struct {
	Prefix string
	Result entities.CommandResult
	Err    error
}

// SpyCommandRepository implements repositories.CommandRepository as a
// configurable spy. Stubs are matched in order against the space-joined
// command line; unmatched commands succeed with empty output.
type SpyCommandRepository struct {
	Stubs []CommandStub

	// spy: every command line received, program name first
	Calls [][]string
}

var _ repositories.CommandRepository = (*SpyCommandRepository)(nil)

func (s *SpyCommandRepository) Run(
	_ context.Context,
	name string,
	args ...string,
) (entities.CommandResult, error) {
	call := append([]string{name}, args...)
	s.Calls = append(s.Calls, call)

	line := strings.Join(call, " ")
	for _, stub := range s.Stubs {
		if strings.HasPrefix(line, stub.Prefix) {
			return stub.Result, stub.Err
		}
	}
	return entities.CommandResult{}, nil
}

// Stub registers an answer for command lines starting with prefix.
func (s *SpyCommandRepository) Stub(prefix, stdout string, err error) *SpyCommandRepository {
	result := entities.CommandResult{Stdout: stdout}
	if err != nil {
		result.ExitCode = 1
	}
	s.Stubs = append(s.Stubs, CommandStub{Prefix: prefix, Result: result, Err: err})
	return s
}

// CallLines returns the received command lines joined with spaces.
func (s *SpyCommandRepository) CallLines() []string {
	lines := make([]string, 0, len(s.Calls))
	for _, call := range s.Calls {
		lines = append(lines, strings.Join(call, " "))
	}
	return lines
}
