package entities

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	ConfigFileName = ".composer-update-mr"
	envPrefix      = "COMPOSER_UPDATE_MR"

	DefaultProvider      = "gitlab"
	DefaultLockFile      = "composer.lock"
	DefaultBinary        = "composer"
	DefaultDiffTool      = "vendor/bin/composer-lock-diff"
	DefaultBranchPrefix  = "composer-update"
	DefaultCommitMessage = "$ composer update"
	DefaultOperation     = "composer"
	DefaultTitleTemplate = "{{operation}} update at {{timestamp}}"
	DefaultTokenUser     = "gitlab-ci-token"
)

// DefaultUpdateArgs are the arguments passed to the Composer binary.
var DefaultUpdateArgs = []string{"update", "--no-progress", "--no-suggest"} //nolint:gochecknoglobals // default

// envBindings maps configuration keys to the CI variables that feed them.
var envBindings = map[string]string{ //nolint:gochecknoglobals // static table
	"private_token":   "GITLAB_API_PRIVATE_TOKEN",
	"repository_url":  "CI_REPOSITORY_URL",
	"project_id":      "CI_PROJECT_ID",
	"project_path":    "CI_PROJECT_PATH",
	"composer_home":   "COMPOSER_HOME",
	"appdata":         "APPDATA",
	"home":            "HOME",
	"xdg_config_home": "XDG_CONFIG_HOME",
}

// Settings is the complete runtime configuration, assembled once at the
// entry point. Nothing else reads the process environment.
type Settings struct {
	PrivateToken  string
	RepositoryURL string
	ProjectID     string
	ProjectPath   string
	Home          HomeEnvironment

	Provider           string
	LockFile           string
	ComposerBinary     string
	UpdateArgs         []string
	DiffTool           string
	BranchPrefix       string
	CommitMessage      string
	Operation          string
	TitleTemplate      string
	TokenUser          string
	RemoveSourceBranch bool
	InsecureSkipVerify bool
}

// NewViper returns a viper instance with defaults, CI environment bindings and
// "COMPOSER_UPDATE_MR_*" overrides. When configPath is empty an optional
// ".composer-update-mr.yaml" in the working directory is read.
func NewViper(configPath string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("provider", DefaultProvider)
	v.SetDefault("lock_file", DefaultLockFile)
	v.SetDefault("composer_binary", DefaultBinary)
	v.SetDefault("update_args", DefaultUpdateArgs)
	v.SetDefault("diff_tool", DefaultDiffTool)
	v.SetDefault("branch_prefix", DefaultBranchPrefix)
	v.SetDefault("commit_message", DefaultCommitMessage)
	v.SetDefault("operation", DefaultOperation)
	v.SetDefault("title_template", DefaultTitleTemplate)
	v.SetDefault("token_user", DefaultTokenUser)
	v.SetDefault("remove_source_branch", false)
	v.SetDefault("insecure_skip_verify", false)

	for key, envName := range envBindings {
		if err := v.BindEnv(key, envName); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", envName, err)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
		}
		return v, nil
	}

	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	return v, nil
}

// NewSettings builds Settings from a configured viper instance. environ is the
// raw process environment, only used to detect XDG_* variables.
func NewSettings(v *viper.Viper, environ []string, fs afero.Fs) (*Settings, error) {
	settings := &Settings{
		PrivateToken:  v.GetString("private_token"),
		RepositoryURL: v.GetString("repository_url"),
		ProjectID:     v.GetString("project_id"),
		ProjectPath:   v.GetString("project_path"),
		Home: HomeEnvironment{
			ComposerHome:  v.GetString("composer_home"),
			AppData:       v.GetString("appdata"),
			Home:          v.GetString("home"),
			XDGConfigHome: v.GetString("xdg_config_home"),
			XDGInUse:      DetectXDG(environ, fs),
			OS:            runtime.GOOS,
		},
		Provider:           v.GetString("provider"),
		LockFile:           v.GetString("lock_file"),
		ComposerBinary:     v.GetString("composer_binary"),
		UpdateArgs:         v.GetStringSlice("update_args"),
		DiffTool:           v.GetString("diff_tool"),
		BranchPrefix:       v.GetString("branch_prefix"),
		CommitMessage:      v.GetString("commit_message"),
		Operation:          v.GetString("operation"),
		TitleTemplate:      v.GetString("title_template"),
		TokenUser:          v.GetString("token_user"),
		RemoveSourceBranch: v.GetBool("remove_source_branch"),
		InsecureSkipVerify: v.GetBool("insecure_skip_verify"),
	}

	if err := validate(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// validate checks for required configuration values.
func validate(settings *Settings) error {
	required := map[string]string{
		"provider":        settings.Provider,
		"lock_file":       settings.LockFile,
		"composer_binary": settings.ComposerBinary,
		"diff_tool":       settings.DiffTool,
		"branch_prefix":   settings.BranchPrefix,
		"commit_message":  settings.CommitMessage,
		"title_template":  settings.TitleTemplate,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}
	return nil
}
