//go:build unit

package entities_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/composer-update-mr/internal/domain/entities"
)

func TestResolveComposerHome(t *testing.T) {
	t.Parallel()

	t.Run("should return COMPOSER_HOME verbatim regardless of other variables", func(t *testing.T) {
		t.Parallel()

		// given
		env := entities.HomeEnvironment{
			ComposerHome:  `C:\custom\composer\`,
			AppData:       `C:\Users\dev\AppData\Roaming`,
			Home:          "/home/dev",
			XDGConfigHome: "/home/dev/.xdg",
			XDGInUse:      true,
			OS:            "windows",
		}

		// when
		home, err := entities.ResolveComposerHome(env, afero.NewMemMapFs())

		// then
		require.NoError(t, err)
		assert.Equal(t, `C:\custom\composer\`, home)
	})

	t.Run("should build the Windows path from APPDATA", func(t *testing.T) {
		t.Parallel()

		// given
		env := entities.HomeEnvironment{AppData: `C:\Users\dev\AppData\Roaming\`, OS: "windows"}

		// when
		home, err := entities.ResolveComposerHome(env, afero.NewMemMapFs())

		// then
		require.NoError(t, err)
		assert.Equal(t, "C:/Users/dev/AppData/Roaming/Composer", home)
	})

	t.Run("should fail on Windows when APPDATA is missing", func(t *testing.T) {
		t.Parallel()

		// given
		env := entities.HomeEnvironment{Home: "/home/dev", OS: "windows"}

		// when
		_, err := entities.ResolveComposerHome(env, afero.NewMemMapFs())

		// then
		require.ErrorIs(t, err, entities.ErrHomeNotSet)
		assert.Contains(t, err.Error(), "APPDATA")
	})

	t.Run("should fail on POSIX when HOME is missing", func(t *testing.T) {
		t.Parallel()

		// given
		env := entities.HomeEnvironment{XDGInUse: true, OS: "linux"}

		// when
		_, err := entities.ResolveComposerHome(env, afero.NewMemMapFs())

		// then
		require.ErrorIs(t, err, entities.ErrHomeNotSet)
		assert.Contains(t, err.Error(), "HOME")
	})

	t.Run("should fall back to the dotfile directory when XDG is not in use", func(t *testing.T) {
		t.Parallel()

		// given
		env := entities.HomeEnvironment{Home: "/home/dev/", OS: "linux"}

		// when
		home, err := entities.ResolveComposerHome(env, afero.NewMemMapFs())

		// then
		require.NoError(t, err)
		assert.Equal(t, "/home/dev/.composer", home)
	})

	t.Run("should prefer the XDG directory when none exists", func(t *testing.T) {
		t.Parallel()

		// given
		env := entities.HomeEnvironment{Home: "/home/dev", XDGInUse: true, OS: "linux"}

		// when
		home, err := entities.ResolveComposerHome(env, afero.NewMemMapFs())

		// then
		require.NoError(t, err)
		assert.Equal(t, "/home/dev/.config/composer", home)
	})

	t.Run("should honour XDG_CONFIG_HOME", func(t *testing.T) {
		t.Parallel()

		// given
		env := entities.HomeEnvironment{
			Home:          "/home/dev",
			XDGConfigHome: "/srv/config",
			XDGInUse:      true,
			OS:            "darwin",
		}

		// when
		home, err := entities.ResolveComposerHome(env, afero.NewMemMapFs())

		// then
		require.NoError(t, err)
		assert.Equal(t, "/srv/config/composer", home)
	})

	t.Run("should return the first existing candidate", func(t *testing.T) {
		t.Parallel()

		// given
		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("/home/dev/.composer", 0o755))
		env := entities.HomeEnvironment{Home: "/home/dev", XDGInUse: true, OS: "linux"}

		// when
		home, err := entities.ResolveComposerHome(env, fs)

		// then
		require.NoError(t, err)
		assert.Equal(t, "/home/dev/.composer", home)
	})
}

func TestDetectXDG(t *testing.T) {
	t.Parallel()

	t.Run("should detect an XDG_ prefixed variable", func(t *testing.T) {
		t.Parallel()

		// given
		environ := []string{"PATH=/usr/bin", "XDG_RUNTIME_DIR=/run/user/1000"}

		// when
		result := entities.DetectXDG(environ, afero.NewMemMapFs())

		// then
		assert.True(t, result)
	})

	t.Run("should detect the system XDG directory", func(t *testing.T) {
		t.Parallel()

		// given
		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("/etc/xdg", 0o755))

		// when
		result := entities.DetectXDG([]string{"PATH=/usr/bin"}, fs)

		// then
		assert.True(t, result)
	})

	t.Run("should report false when neither is present", func(t *testing.T) {
		t.Parallel()

		// given
		environ := []string{"HOME=/home/dev", "MY_XDG_THING=1"}

		// when
		result := entities.DetectXDG(environ, afero.NewMemMapFs())

		// then
		assert.False(t, result)
	})
}

func TestDiffToolPath(t *testing.T) {
	t.Parallel()

	// when
	result := entities.DiffToolPath("/home/dev/.composer", "vendor/bin/composer-lock-diff")

	// then
	assert.Equal(t, "/home/dev/.composer/vendor/bin/composer-lock-diff", result)
}
