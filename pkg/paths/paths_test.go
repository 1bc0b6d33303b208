package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/paths"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RootResolution(t *testing.T) {
	home := t.TempDir()

	tests := []struct {
		name        string
		root        string
		env         map[string]string
		want        string
		usedDefault bool
	}{
		{
			name: "explicit root",
			root: "/srv/dotfiles",
			want: "/srv/dotfiles",
		},
		{
			name: "tilde root",
			root: "~/config-repo",
			want: filepath.Join(home, "config-repo"),
		},
		{
			name: "from DOTFILES env",
			env:  map[string]string{paths.EnvDotfiles: "/env/dotfiles"},
			want: "/env/dotfiles",
		},
		{
			name: "from DOTFILES_ROOT alias",
			env:  map[string]string{paths.EnvDotfilesRoot: "/alias/dotfiles"},
			want: "/alias/dotfiles",
		},
		{
			name:        "default under home",
			want:        filepath.Join(home, "dotfiles"),
			usedDefault: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(paths.EnvDotfiles, "")
			t.Setenv(paths.EnvDotfilesRoot, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			p, err := paths.NewWithHome(tt.root, home, types.PlatformLinux)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.DotfilesRoot())
			assert.Equal(t, tt.usedDefault, p.UsedDefault())
		})
	}
}

func TestPaths_Layout(t *testing.T) {
	p, err := paths.NewWithHome("/repo", "/home/user", types.PlatformDarwin)
	require.NoError(t, err)

	assert.Equal(t, "/repo/config/files.yaml", p.ManifestPath())
	assert.Equal(t, "/repo/config/packages.yaml", p.PackagesPath())
	assert.Equal(t, "/repo/config/dotfiles.toml", p.SettingsPath())
	assert.Equal(t, "/repo/.dotfiles/hooks", p.HooksDir())
	assert.Equal(t, "/repo/.dotfiles/vars.yaml", p.VarsPath())
	assert.Equal(t, "/repo/backups", p.BackupsDir())
	assert.Equal(t, types.PlatformDarwin, p.Platform())
	assert.Equal(t, "/repo/files/gitconfig", p.RepoPath("files/gitconfig"))
	assert.Equal(t, "/home/user/.config/fish", p.HomePath(".config/fish/"))
	assert.Equal(t, "/home/user/.gitconfig", p.HomePath("~/.gitconfig"))
}

func TestRelToHome(t *testing.T) {
	p, err := paths.NewWithHome("/repo", "/home/user", types.PlatformLinux)
	require.NoError(t, err)

	rel, err := p.RelToHome("/home/user/.config/nvim/init.lua")
	require.NoError(t, err)
	assert.Equal(t, ".config/nvim/init.lua", rel)

	_, err = p.RelToHome("/etc/hosts")
	assert.True(t, errors.IsErrorCode(err, errors.ErrOutsideHome))

	_, err = p.RelToHome("/home/user")
	assert.Error(t, err, "home itself is not a trackable path")

	_, err = p.RelToHome("/home/username/.bashrc")
	assert.Error(t, err, "sibling directory sharing a prefix is outside home")
}

func TestExpandHomeAndRepoMembership(t *testing.T) {
	p, err := paths.NewWithHome("/home/user/dotfiles", "/home/user", types.PlatformLinux)
	require.NoError(t, err)

	assert.Equal(t, "/home/user", p.ExpandHome("~"))
	assert.Equal(t, "/home/user/.vimrc", p.ExpandHome("~/.vimrc"))
	assert.Equal(t, "~other/.vimrc", p.ExpandHome("~other/.vimrc"))
	assert.Equal(t, "relative", p.ExpandHome("relative"))

	assert.True(t, p.IsInRepo("/home/user/dotfiles/files/vimrc"))
	assert.False(t, p.IsInRepo("/home/user/dotfiles-old/vimrc"))

	rel, ok := p.RelToRepo("/home/user/dotfiles/files/home/.vimrc")
	assert.True(t, ok)
	assert.Equal(t, "files/home/.vimrc", rel)

	abs, err := p.ResolveUserPath("~/.vimrc")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.vimrc", abs)
}

func TestNewWithHome_EmptyHome(t *testing.T) {
	_, err := paths.NewWithHome("/repo", "", types.PlatformLinux)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
