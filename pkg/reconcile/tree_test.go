// pkg/reconcile/tree_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: real filesystem in temp dirs
// PURPOSE: Verify comparison and copy helpers and backup bookkeeping

package reconcile_test

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dotfiles-cli/dotfiles/pkg/reconcile"
	"github.com/dotfiles-cli/dotfiles/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesEqual(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	big := strings.Repeat("x", 100*1024)

	a := env.WriteRepoFile("a", big)
	b := env.WriteRepoFile("b", big)
	c := env.WriteRepoFile("c", big[:len(big)-1]+"y")

	equal, err := reconcile.FilesEqual(env.FS, a, b)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = reconcile.FilesEqual(env.FS, a, c)
	require.NoError(t, err)
	assert.False(t, equal)

	_, err = reconcile.FilesEqual(env.FS, a, env.RepoPath("missing"))
	assert.Error(t, err)
}

func TestTreesEqualAndReplaceTree(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithRepoTree(testutil.FileTree{"nvim": testutil.FileTree{
		"init.lua": "require('x')",
		"lua":      testutil.FileTree{"plugins.lua": "return {}"},
	}})
	env.WithHomeTree(testutil.FileTree{"nvim": testutil.FileTree{
		"init.lua": "require('x')",
		"lua":      testutil.FileTree{"plugins.lua": "return { 'new' }"},
	}})

	equal, err := reconcile.TreesEqual(env.FS, env.RepoPath("nvim"), env.HomePath("nvim"))
	require.NoError(t, err)
	assert.False(t, equal, "deep difference is detected")

	shallow, err := reconcile.DirsShallowEqual(env.FS, env.RepoPath("nvim"), env.HomePath("nvim"))
	require.NoError(t, err)
	assert.True(t, shallow, "shallow comparison ignores nested content")

	n, err := reconcile.ReplaceTree(env.FS, env.HomePath("nvim"), env.RepoPath("nvim"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	equal, err = reconcile.TreesEqual(env.FS, env.RepoPath("nvim"), env.HomePath("nvim"))
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestCopyTree_PreservesLinks(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteRepoFile("src/real", "data")
	testutil.CreateSymlink(t, "real", env.RepoPath("src/alias"))

	n, err := reconcile.CopyTree(env.FS, env.RepoPath("src"), env.RepoPath("dst"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	testutil.AssertSymlink(t, env.RepoPath("dst/alias"), "real")
}

func TestBackup_Cleanup(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	now := time.Date(2024, 1, 31, 15, 45, 0, 0, time.UTC)

	t.Run("empty run is removed", func(t *testing.T) {
		b := reconcile.NewRunBackup(env.FS, env.Paths.BackupsDir(), env.HomeDir, reconcile.PreApplyPrefix, "20060102_150405", now)
		assert.Equal(t, filepath.Join(env.DotfilesRoot, "backups", "pre-apply-20240131_154500"), b.Dir())
		testutil.CreateDir(t, b.Dir(), "")

		removed, err := b.Cleanup()
		require.NoError(t, err)
		assert.True(t, removed)
		assert.False(t, testutil.DirExists(t, b.Dir()))
	})

	t.Run("run with files is kept", func(t *testing.T) {
		b := reconcile.NewRunBackup(env.FS, env.Paths.BackupsDir(), env.HomeDir, reconcile.PreApplyPrefix, "20060102_150405", now)
		require.NoError(t, b.Save(env.WriteHomeFile(".inputrc", "set editing-mode vi")))

		removed, err := b.Cleanup()
		require.NoError(t, err)
		assert.False(t, removed)
		testutil.AssertFileContent(t, filepath.Join(b.Dir(), ".inputrc"), "set editing-mode vi")
	})

	t.Run("saving an absent path is a no-op", func(t *testing.T) {
		b := reconcile.NewBackup(env.FS, filepath.Join(env.DotfilesRoot, "backups", "noop"), env.HomeDir)
		require.NoError(t, b.Save(env.HomePath(".absent")))
		assert.Equal(t, 0, b.Files())
	})
}
