package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/rios0rios0/composer-update-mr/internal/domain/entities"
	"github.com/rios0rios0/composer-update-mr/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/composer-update-mr/internal/infrastructure/repositories"
)

const (
	gitBinary       = "git"
	originRemote    = "origin"
	currentDir      = "."
	diffToolJSONArg = "--json"
)

var ErrTokenRequired = errors.New("GITLAB_API_PRIVATE_TOKEN must be set to push and open a merge request")

// Update is the interface for the update command.
type Update interface {
	Execute(ctx context.Context, settings *entities.Settings, opts UpdateOptions) (*UpdateResult, error)
}

// UpdateOptions holds the positional arguments and flags of one run.
type UpdateOptions struct {
	Name       string // commit identity name
	Email      string // commit identity email
	BaseBranch string // merge request target
	DryRun     bool
}

// UpdateResult describes what a run did.
type UpdateResult struct {
	Changed      bool
	Draft        *entities.MergeRequestDraft
	MergeRequest *entities.MergeRequest // nil on dry runs and no-ops
}

// UpdateCommand runs Composer, and when the lockfile changed pushes a branch
// and opens a merge request describing the version changes.
type UpdateCommand struct {
	runner           repositories.CommandRepository
	origin           repositories.OriginRepository
	providerRegistry *infraRepos.ProviderRegistry
	fs               afero.Fs
	now              func() time.Time
}

// NewUpdateCommand creates a new UpdateCommand.
func NewUpdateCommand(
	runner repositories.CommandRepository,
	origin repositories.OriginRepository,
	providerRegistry *infraRepos.ProviderRegistry,
	fs afero.Fs,
) *UpdateCommand {
	return &UpdateCommand{
		runner:           runner,
		origin:           origin,
		providerRegistry: providerRegistry,
		fs:               fs,
		now:              time.Now,
	}
}

// Execute runs the whole pipeline. Every step is blocking and the first
// failure aborts the run; nothing already pushed is rolled back.
func (it *UpdateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts UpdateOptions,
) (*UpdateResult, error) {
	if _, err := it.runner.Run(ctx, settings.ComposerBinary, settings.UpdateArgs...); err != nil {
		return nil, fmt.Errorf("composer update failed: %w", err)
	}

	now := it.now()
	branch := entities.BranchName(settings.BranchPrefix, now)

	changed, err := it.lockFileChanged(ctx, settings.LockFile)
	if err != nil {
		return nil, err
	}
	if !changed {
		logger.Infof("%s is unchanged, nothing to do.", settings.LockFile)
		return &UpdateResult{Changed: false}, nil
	}

	diff, err := it.readDiff(ctx, settings)
	if err != nil {
		return nil, err
	}
	logDiffSummary(diff)

	draft := &entities.MergeRequestDraft{
		SourceBranch:       branch,
		TargetBranch:       opts.BaseBranch,
		Title:              entities.MergeRequestTitle(settings.TitleTemplate, settings.Operation, now),
		Description:        entities.BuildDescription(diff),
		RemoveSourceBranch: settings.RemoveSourceBranch,
	}

	if opts.DryRun {
		logger.Infof("[DRY RUN] Would push %s and open a merge request into %s", branch, opts.BaseBranch)
		return &UpdateResult{Changed: true, Draft: draft}, nil
	}

	if settings.PrivateToken == "" {
		return nil, ErrTokenRequired
	}

	remote, err := it.resolveRemote(ctx, settings)
	if err != nil {
		return nil, err
	}

	if err = it.setupGit(ctx, settings, opts, remote); err != nil {
		return nil, err
	}
	if err = it.pushBranch(ctx, settings, branch); err != nil {
		return nil, err
	}

	mr, err := it.createMergeRequest(ctx, settings, remote, draft)
	if err != nil {
		return nil, err
	}
	logger.Infof("Created merge request !%d: %s", mr.ID, mr.URL)

	return &UpdateResult{Changed: true, Draft: draft, MergeRequest: mr}, nil
}

// lockFileChanged asks git for the status of the lockfile only.
func (it *UpdateCommand) lockFileChanged(ctx context.Context, lockFile string) (bool, error) {
	result, err := it.runner.Run(ctx, gitBinary, "status", "-sb", "--", lockFile)
	if err != nil {
		return false, fmt.Errorf("failed to query git status: %w", err)
	}
	return strings.Contains(result.Stdout, lockFile), nil
}

// readDiff runs composer-lock-diff from the Composer home directory.
func (it *UpdateCommand) readDiff(ctx context.Context, settings *entities.Settings) (entities.DependencyDiff, error) {
	home, err := entities.ResolveComposerHome(settings.Home, it.fs)
	if err != nil {
		return entities.DependencyDiff{}, err
	}
	logger.Debugf("Composer home: %s", home)

	result, err := it.runner.Run(ctx, entities.DiffToolPath(home, settings.DiffTool), diffToolJSONArg)
	if err != nil {
		return entities.DependencyDiff{}, fmt.Errorf("composer-lock-diff failed: %w", err)
	}

	diff, err := entities.ParseDependencyDiff([]byte(result.Stdout))
	if err != nil {
		return entities.DependencyDiff{}, fmt.Errorf("failed to read composer-lock-diff output: %w", err)
	}
	return diff, nil
}

// resolveRemote returns the repository URL from the CI environment, or from
// the origin remote of the checkout when running outside CI.
func (it *UpdateCommand) resolveRemote(
	ctx context.Context,
	settings *entities.Settings,
) (entities.RemoteURL, error) {
	raw := settings.RepositoryURL
	if raw == "" {
		originURL, err := it.origin.OriginURL(ctx, currentDir)
		if err != nil {
			return entities.RemoteURL{}, fmt.Errorf("repository URL is not set and cannot be read from git: %w", err)
		}
		logger.Debugf("Using origin remote %s", entities.RedactURL(originURL))
		raw = originURL
	}

	remote, err := entities.ParseRemoteURL(raw)
	if err != nil {
		return entities.RemoteURL{}, fmt.Errorf("invalid repository URL: %w", err)
	}
	return remote, nil
}

// setupGit configures the commit identity and points origin at a URL that
// carries the private token, so the following push is authenticated.
func (it *UpdateCommand) setupGit(
	ctx context.Context,
	settings *entities.Settings,
	opts UpdateOptions,
	remote entities.RemoteURL,
) error {
	authURL := remote.WithCredentials(settings.TokenUser, settings.PrivateToken).String()
	return it.runGit(ctx, [][]string{
		{"config", "user.name", opts.Name},
		{"config", "user.email", opts.Email},
		{"remote", "set-url", originRemote, authURL},
	})
}

// pushBranch commits the lockfile on a fresh branch and pushes it.
func (it *UpdateCommand) pushBranch(ctx context.Context, settings *entities.Settings, branch string) error {
	return it.runGit(ctx, [][]string{
		{"checkout", "-b", branch},
		{"add", settings.LockFile},
		{"commit", "-m", settings.CommitMessage},
		{"push", originRemote, branch},
	})
}

func (it *UpdateCommand) runGit(ctx context.Context, steps [][]string) error {
	for _, args := range steps {
		if _, err := it.runner.Run(ctx, gitBinary, args...); err != nil {
			return fmt.Errorf("git %s failed: %w", args[0], err)
		}
	}
	return nil
}

func (it *UpdateCommand) createMergeRequest(
	ctx context.Context,
	settings *entities.Settings,
	remote entities.RemoteURL,
	draft *entities.MergeRequestDraft,
) (*entities.MergeRequest, error) {
	projectPath := settings.ProjectPath
	if projectPath == "" {
		projectPath = remote.ProjectPath()
	}
	projectID := settings.ProjectID
	if projectID == "" {
		projectID = projectPath
	}

	baseURL, err := remote.APIBaseURL(projectPath)
	if err != nil {
		return nil, err
	}

	provider, err := it.providerRegistry.Get(settings.Provider, entities.ProviderConfig{
		BaseURL:            baseURL,
		Token:              settings.PrivateToken,
		InsecureSkipVerify: settings.InsecureSkipVerify,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	logger.Infof("Opening merge request on %s (%s, project %s)", provider.Name(), baseURL, projectID)
	mr, err := provider.CreateMergeRequest(ctx, projectID, *draft)
	if err != nil {
		return nil, err
	}
	if mr == nil {
		return nil, errors.New("provider returned no merge request")
	}
	return mr, nil
}

// logDiffSummary logs how many packages moved and by how much.
func logDiffSummary(diff entities.DependencyDiff) {
	counts := diff.CountBumps()
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		parts = append(parts, fmt.Sprintf("%d %s", counts[entities.BumpKind(kind)], kind))
	}
	logger.Infof("%d package(s) changed: %s", diff.Len(), strings.Join(parts, ", "))
}
