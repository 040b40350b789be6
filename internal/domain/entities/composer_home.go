package entities

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/spf13/afero"
)

const (
	windowsOS    = "windows"
	xdgEnvPrefix = "XDG_"
	xdgSystemDir = "/etc/xdg"
)

var ErrHomeNotSet = errors.New("composer home cannot be determined")

// HomeEnvironment holds the environment values that decide where Composer
// keeps its home directory.
type HomeEnvironment struct {
	ComposerHome  string // COMPOSER_HOME
	AppData       string // APPDATA
	Home          string // HOME
	XDGConfigHome string // XDG_CONFIG_HOME
	XDGInUse      bool   // any XDG_* variable is set or /etc/xdg exists
	OS            string // runtime.GOOS of the host
}

// ResolveComposerHome locates the Composer home directory the same way
// Composer itself does:
//   - COMPOSER_HOME wins verbatim when set.
//   - On Windows the directory is "%APPDATA%/Composer".
//   - Elsewhere the XDG directory (when XDG is in use) and "~/.composer" are
//     candidates; the first existing one wins, falling back to the first.
func ResolveComposerHome(env HomeEnvironment, fs afero.Fs) (string, error) {
	if env.ComposerHome != "" {
		return env.ComposerHome, nil
	}

	if env.OS == windowsOS {
		if env.AppData == "" {
			return "", fmt.Errorf(
				"%w: the APPDATA or COMPOSER_HOME environment variable must be set for composer to run correctly",
				ErrHomeNotSet,
			)
		}
		return normalizeDir(env.AppData) + "/Composer", nil
	}

	if env.Home == "" {
		return "", fmt.Errorf(
			"%w: the HOME or COMPOSER_HOME environment variable must be set for composer to run correctly",
			ErrHomeNotSet,
		)
	}

	candidates := homeCandidates(env)
	for _, dir := range candidates {
		if exists, _ := afero.DirExists(fs, dir); exists {
			return dir, nil
		}
	}
	return candidates[0], nil
}

func homeCandidates(env HomeEnvironment) []string {
	userDir := normalizeDir(env.Home)

	var candidates []string
	if env.XDGInUse {
		xdgConfig := env.XDGConfigHome
		if xdgConfig == "" {
			xdgConfig = userDir + "/.config"
		}
		candidates = append(candidates, xdgConfig+"/composer")
	}
	return append(candidates, userDir+"/.composer")
}

// DetectXDG reports whether the host follows the XDG base directory layout:
// either some XDG_* variable is present in environ, or /etc/xdg exists.
func DetectXDG(environ []string, fs afero.Fs) bool {
	for _, entry := range environ {
		if strings.HasPrefix(entry, xdgEnvPrefix) {
			return true
		}
	}
	exists, _ := afero.DirExists(fs, xdgSystemDir)
	return exists
}

// DiffToolPath returns the location of the composer-lock-diff executable
// inside the Composer home directory.
func DiffToolPath(home, tool string) string {
	return path.Join(home, tool)
}

func normalizeDir(dir string) string {
	return strings.TrimRight(strings.ReplaceAll(dir, `\`, "/"), "/")
}
