package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/composer-update-mr/internal/domain/entities"
	"github.com/rios0rios0/composer-update-mr/internal/domain/repositories"
)

// ShellCommandRepository runs programs as child processes of this one.
type ShellCommandRepository struct {
	dir string
}

// NewCommandRepository returns a runner working in dir. An empty dir means
// the current working directory.
func NewCommandRepository(dir string) repositories.CommandRepository {
	return &ShellCommandRepository{dir: dir}
}

// Run executes the program and waits for it. Stdout and stderr are captured
// separately and logged at debug level.
func (it *ShellCommandRepository) Run(
	ctx context.Context,
	name string,
	args ...string,
) (entities.CommandResult, error) {
	printable := printableCommand(name, args)
	logger.Infof("Running: %s", printable)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = it.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	result := entities.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if result.Stdout != "" {
		logger.Debugf("[%s] stdout:\n%s", name, result.Stdout)
	}
	if result.Stderr != "" {
		logger.Debugf("[%s] stderr:\n%s", name, result.Stderr)
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, fmt.Errorf(
				"%s exited with code %d: %s",
				printable, result.ExitCode, strings.TrimSpace(result.Stderr),
			)
		}
		result.ExitCode = -1
		return result, fmt.Errorf("failed to run %s: %w", printable, runErr)
	}

	return result, nil
}

// printableCommand joins the command line with credentials in URL arguments
// redacted.
func printableCommand(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, arg := range args {
		parts = append(parts, entities.RedactURL(arg))
	}
	return strings.Join(parts, " ")
}
