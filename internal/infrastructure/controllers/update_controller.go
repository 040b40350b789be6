package controllers

import (
	"context"
	"errors"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/composer-update-mr/internal/domain/commands"
	"github.com/rios0rios0/composer-update-mr/internal/domain/entities"
)

const expectedArgs = 3

var ErrInvalidArguments = errors.New("invalid arguments")

// UpdateController handles the root command: "<name> <email> <base-branch>".
type UpdateController struct {
	command commands.Update
	fs      afero.Fs
	environ func() []string
}

// NewUpdateController creates a new UpdateController.
func NewUpdateController(command commands.Update, fs afero.Fs) *UpdateController {
	return &UpdateController{command: command, fs: fs, environ: os.Environ}
}

// GetBind returns the Cobra command metadata for the update controller.
func (it *UpdateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "composer-update-mr <name> <email> <base-branch>",
		Short: "Open a GitLab merge request for composer update",
		Long: `Run "composer update" inside a GitLab CI job. When composer.lock changes,
commit it on a new branch, push it and open a merge request against
<base-branch> listing every package version change.

The commit is authored as <name> <email>. The GitLab API is reached with
GITLAB_API_PRIVATE_TOKEN; CI_REPOSITORY_URL, CI_PROJECT_ID and
CI_PROJECT_PATH are read from the CI environment.`,
	}
}

// ValidateArgs rejects anything but exactly three positional arguments.
func (it *UpdateController) ValidateArgs(_ *cobra.Command, args []string) error {
	if len(args) != expectedArgs {
		return fmt.Errorf(
			"%w: expected <name> <email> <base-branch>, got %d", ErrInvalidArguments, len(args),
		)
	}
	return nil
}

// Execute loads the settings and runs the update.
func (it *UpdateController) Execute(cmd *cobra.Command, args []string) error {
	if err := it.ValidateArgs(cmd, args); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, _ := cmd.Flags().GetString("config")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	v, err := entities.NewViper(configPath)
	if err != nil {
		return err
	}
	settings, err := entities.NewSettings(v, it.environ(), it.fs)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	result, err := it.command.Execute(ctx, settings, commands.UpdateOptions{
		Name:       args[0],
		Email:      args[1],
		BaseBranch: args[2],
		DryRun:     dryRun,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !result.Changed {
		_, _ = fmt.Fprintln(out, "No changes.")
		return nil
	}

	if dryRun && result.Draft != nil {
		encoder := yaml.NewEncoder(out)
		defer encoder.Close()
		if encodeErr := encoder.Encode(result.Draft); encodeErr != nil {
			return fmt.Errorf("failed to print merge request draft: %w", encodeErr)
		}
	}
	return nil
}

// AddFlags adds the controller flags to the given Cobra command.
func (it *UpdateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Path to config file (default: ./"+entities.ConfigFileName+".yaml when present)")
	cmd.Flags().Bool("dry-run", false,
		"Run composer and print the merge request without pushing or calling the API")
	cmd.Flags().BoolP("verbose", "v", false,
		"Enable verbose output")
}
