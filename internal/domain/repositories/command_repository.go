package repositories

import (
	"context"

	"github.com/rios0rios0/composer-update-mr/internal/domain/entities"
)

// CommandRepository runs external programs (composer, git, composer-lock-diff).
type CommandRepository interface {
	// Run executes name with args, waits for it and captures its output.
	// A process that cannot be started or exits non-zero yields an error;
	// the captured result is returned in both cases.
	Run(ctx context.Context, name string, args ...string) (entities.CommandResult, error)
}
