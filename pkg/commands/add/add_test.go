// pkg/commands/add/add_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: testutil.TestEnvironment (real filesystem in temp dirs)
// PURPOSE: Verify path classification, tracking, relinking and rollback

package add_test

import (
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/add"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/manifest"
	"github.com/dotfiles-cli/dotfiles/pkg/testutil"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*testutil.TestEnvironment, *commands.Env) {
	t.Helper()
	env := testutil.NewTestEnvironment(t)
	return env, commands.New(env.Paths, env.Config, env.FS, env.Runner)
}

func loadManifest(t *testing.T, env *testutil.TestEnvironment) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Load(env.FS, env.Paths.ManifestPath())
	require.NoError(t, err)
	return m
}

func TestClassify(t *testing.T) {
	tests := []struct {
		dest   string
		secret bool
		want   string
	}{
		{".gitconfig", false, "files/home/.gitconfig"},
		{".config/fish", false, "files/config/fish"},
		{".config/nvim/init.lua", false, "files/config/nvim/init.lua"},
		{".ssh/config", false, "files/home/.ssh/config"},
		{"bin/tool", false, "files/bin/tool"},
		{".ssh/id_ed25519", true, "secrets/id_ed25519"},
		{".config/gh/hosts.yml", true, "secrets/hosts.yml"},
	}
	for _, tt := range tests {
		t.Run(tt.dest, func(t *testing.T) {
			assert.Equal(t, tt.want, add.Classify(tt.dest, tt.secret))
		})
	}
}

func TestAdd_SymlinkReplacesOriginal(t *testing.T) {
	env, cenv := setup(t)
	env.WriteHomeFile(".gitconfig", "[user]\n")

	result, err := add.Add(add.AddOptions{Env: cenv, Path: "~/.gitconfig"})
	require.NoError(t, err)

	assert.True(t, result.Linked)
	assert.False(t, result.Replaced)
	assert.Equal(t, types.FileEntry{Source: "files/home/.gitconfig", Dest: ".gitconfig", Kind: types.KindSymlink}, result.Entry)
	assert.Equal(t, "[user]\n", env.ReadRepo("files/home/.gitconfig"))
	testutil.AssertSymlink(t, env.HomePath(".gitconfig"), env.RepoPath("files/home/.gitconfig"))

	entry, ok := loadManifest(t, env).FindByDest(".gitconfig")
	require.True(t, ok)
	assert.Equal(t, result.Entry, entry)
	testutil.AssertNoFile(t, env.HomePath(".gitconfig.dotfiles-orig"))
}

func TestAdd_CopyLeavesOriginal(t *testing.T) {
	env, cenv := setup(t)
	env.WithHomeTree(testutil.FileTree{".config/fish": testutil.FileTree{"config.fish": "set -x A 1"}})

	result, err := add.Add(add.AddOptions{
		Env:      cenv,
		Path:     env.HomePath(".config/fish"),
		Kind:     types.KindCopy,
		Platform: types.PlatformDarwin,
	})
	require.NoError(t, err)

	assert.False(t, result.Linked)
	assert.Equal(t, "files/config/fish", result.Entry.Source)
	assert.Equal(t, types.PlatformDarwin, result.Entry.Platform)
	assert.True(t, testutil.DirExists(t, env.HomePath(".config/fish")))
	assert.False(t, testutil.SymlinkExists(t, env.HomePath(".config/fish")))
	assert.Equal(t, "set -x A 1", env.ReadRepo("files/config/fish/config.fish"))
}

func TestAdd_Secret(t *testing.T) {
	env, cenv := setup(t)
	env.WriteHomeFile(".config/tokens.env", "TOKEN=x")

	result, err := add.Add(add.AddOptions{Env: cenv, Path: "~/.config/tokens.env", Secret: true, Kind: types.KindCopy})
	require.NoError(t, err)
	assert.Equal(t, "secrets/tokens.env", result.Entry.Source)
	assert.Equal(t, "TOKEN=x", env.ReadRepo("secrets/tokens.env"))
}

func TestAdd_ReaddUpdatesEntry(t *testing.T) {
	env, cenv := setup(t)
	env.WriteHomeFile(".vimrc", "v1")
	_, err := add.Add(add.AddOptions{Env: cenv, Path: "~/.vimrc", Kind: types.KindCopy})
	require.NoError(t, err)

	env.WriteHomeFile(".vimrc", "v2")
	result, err := add.Add(add.AddOptions{Env: cenv, Path: "~/.vimrc", Kind: types.KindCopy})
	require.NoError(t, err)

	assert.True(t, result.Replaced)
	assert.Equal(t, 1, loadManifest(t, env).Len())
	assert.Equal(t, "v2", env.ReadRepo("files/home/.vimrc"))
}

func TestAdd_Rejections(t *testing.T) {
	env, cenv := setup(t)
	outside := testutil.CreateFile(t, t.TempDir(), "elsewhere", "x")
	linked := env.WriteRepoFile("files/home/.zshrc", "z")
	env.SymlinkHome(".zshrc", linked)
	env.SymlinkHome(".other", outside)

	tests := []struct {
		name string
		path string
		code errors.ErrorCode
	}{
		{"missing file", "~/.nothing", errors.ErrNotFound},
		{"outside home", outside, errors.ErrOutsideHome},
		{"already linked into repository", "~/.zshrc", errors.ErrAlreadyExists},
		{"other symlink", "~/.other", errors.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := add.Add(add.AddOptions{Env: cenv, Path: tt.path})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), err.Error())
		})
	}
	assert.Equal(t, 0, loadManifest(t, env).Len())
}

// failingFS fails writes and links whose path ends with one of the suffixes.
type failingFS struct {
	types.FS
	writeSuffix string
	linkSuffix  string
}

func (f failingFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if f.writeSuffix != "" && strings.HasSuffix(name, f.writeSuffix) {
		return os.ErrPermission
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f failingFS) Symlink(oldname, newname string) error {
	if f.linkSuffix != "" && strings.HasSuffix(newname, f.linkSuffix) {
		return os.ErrPermission
	}
	return f.FS.Symlink(oldname, newname)
}

func TestAdd_ManifestFailureRollsBackRepositoryCopy(t *testing.T) {
	env, cenv := setup(t)
	env.WriteHomeFile(".bashrc", "new")
	env.WriteRepoFile("files/home/.bashrc", "previous repo copy")
	cenv.FS = failingFS{FS: env.FS, writeSuffix: "files.yaml.tmp"}

	_, err := add.Add(add.AddOptions{Env: cenv, Path: "~/.bashrc"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))

	assert.Equal(t, "previous repo copy", env.ReadRepo("files/home/.bashrc"))
	assert.Equal(t, "new", env.ReadHome(".bashrc"))
	assert.False(t, testutil.SymlinkExists(t, env.HomePath(".bashrc")))
	testutil.AssertNoFile(t, env.RepoPath("files/home/.bashrc.dotfiles-prev"))
}

func TestAdd_LinkFailureRestoresOriginal(t *testing.T) {
	env, cenv := setup(t)
	env.WriteHomeFile(".profile", "keep me")
	cenv.FS = failingFS{FS: env.FS, linkSuffix: ".profile"}

	result, err := add.Add(add.AddOptions{Env: cenv, Path: "~/.profile"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkCreate))
	require.NotNil(t, result)
	assert.False(t, result.Linked)

	assert.Equal(t, "keep me", env.ReadHome(".profile"))
	assert.Equal(t, "keep me", env.ReadRepo("files/home/.profile"))
	_, tracked := loadManifest(t, env).FindByDest(".profile")
	assert.True(t, tracked)
}

func TestAdd_RefusesSourceHeldByAnotherEntry(t *testing.T) {
	env, cenv := setup(t)
	env.WriteHomeFile(".aws/credentials", "AWS-SECRET")
	env.WriteHomeFile(".other/credentials", "OTHER-SECRET")

	first, err := add.Add(add.AddOptions{Env: cenv, Path: "~/.aws/credentials", Secret: true})
	require.NoError(t, err)
	require.Equal(t, "secrets/credentials", first.Entry.Source)

	_, err = add.Add(add.AddOptions{Env: cenv, Path: "~/.other/credentials", Secret: true})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists), err.Error())
	assert.NotEmpty(t, errors.Hint(err))

	assert.Equal(t, "AWS-SECRET", env.ReadRepo("secrets/credentials"))
	assert.Equal(t, "AWS-SECRET", env.ReadHome(".aws/credentials"))
	assert.Equal(t, "OTHER-SECRET", env.ReadHome(".other/credentials"))
	assert.False(t, testutil.SymlinkExists(t, env.HomePath(".other/credentials")))

	m := loadManifest(t, env)
	assert.Equal(t, 1, m.Len())
	_, tracked := m.FindByDest(".other/credentials")
	assert.False(t, tracked)
}

func TestAdd_ReaddSecretKeepsItsSource(t *testing.T) {
	env, cenv := setup(t)
	env.WriteHomeFile(".netrc", "machine a")
	_, err := add.Add(add.AddOptions{Env: cenv, Path: "~/.netrc", Secret: true, Kind: types.KindCopy})
	require.NoError(t, err)

	env.WriteHomeFile(".netrc", "machine b")
	result, err := add.Add(add.AddOptions{Env: cenv, Path: "~/.netrc", Secret: true, Kind: types.KindCopy})
	require.NoError(t, err)
	assert.True(t, result.Replaced)
	assert.Equal(t, "machine b", env.ReadRepo("secrets/.netrc"))
}
