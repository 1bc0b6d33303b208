// pkg/commands/collect/collect_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: testutil.TestEnvironment (real filesystem in temp dirs)
// PURPOSE: Verify collect copies drifted destinations back into the repository

package collect_test

import (
	"context"
	"testing"

	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/collect"
	"github.com/dotfiles-cli/dotfiles/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*testutil.TestEnvironment, *commands.Env) {
	t.Helper()
	env := testutil.NewTestEnvironment(t)
	return env, commands.New(env.Paths, env.Config, env.FS, env.Runner)
}

func run(t *testing.T, cenv *commands.Env, dryRun bool) *collect.Report {
	t.Helper()
	report, err := collect.Collect(context.Background(), collect.CollectOptions{Env: cenv, DryRun: dryRun})
	require.NoError(t, err)
	return report
}

func TestCollect_OverwritesChangedCopy(t *testing.T) {
	env, cenv := setup(t)
	env.WriteManifest(`entries:
  - source: files/gitconfig
    dest: .gitconfig
    type: copy
`)
	env.WriteRepoFile("files/gitconfig", "old")
	env.WriteHomeFile(".gitconfig", "edited at home")

	report := run(t, cenv, false)

	assert.Equal(t, 1, report.Collected)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 0, report.Errored)
	assert.Equal(t, "edited at home", env.ReadRepo("files/gitconfig"))
}

func TestCollect_SkipReasons(t *testing.T) {
	env, cenv := setup(t)
	env.WriteManifest(`entries:
  - source: files/absent
    dest: .absent
    type: copy
  - source: files/linked
    dest: .linked
  - source: files/same
    dest: .same
    type: copy
`)
	linked := env.WriteRepoFile("files/linked", "x")
	env.SymlinkHome(".linked", linked)
	env.WriteRepoFile("files/same", "same")
	env.WriteHomeFile(".same", "same")

	report := run(t, cenv, false)
	assert.Equal(t, 3, report.Skipped)
	notes := []string{report.Items[0].Note, report.Items[1].Note, report.Items[2].Note}
	assert.Equal(t, []string{collect.NoteNotFound, collect.NoteSymlink, collect.NoteUnchanged}, notes)
}

func TestCollect_ReplacesDirectoriesWholesale(t *testing.T) {
	env, cenv := setup(t)
	env.WriteManifest(`entries:
  - source: files/config/nvim
    dest: .config/nvim
    type: copy
`)
	env.WithRepoTree(testutil.FileTree{
		"files/config/nvim": testutil.FileTree{
			"init.lua":  "old",
			"stale.lua": "gone soon",
		},
	})
	env.WithHomeTree(testutil.FileTree{
		".config/nvim": testutil.FileTree{
			"init.lua": "new",
			"lua":      testutil.FileTree{"plugins.lua": "deep"},
		},
	})

	report := run(t, cenv, false)
	require.Equal(t, 1, report.Collected)
	assert.Equal(t, 2, report.Items[0].Files)
	assert.Equal(t, "new", env.ReadRepo("files/config/nvim/init.lua"))
	assert.Equal(t, "deep", env.ReadRepo("files/config/nvim/lua/plugins.lua"))
	testutil.AssertNoFile(t, env.RepoPath("files/config/nvim/stale.lua"))
}

func TestCollect_DeepDirectoryChangeIsDetected(t *testing.T) {
	env, cenv := setup(t)
	env.WriteManifest(`entries:
  - source: files/fish
    dest: .config/fish
    type: copy
`)
	env.WithRepoTree(testutil.FileTree{"files/fish": testutil.FileTree{"conf.d": testutil.FileTree{"a.fish": "1"}}})
	env.WithHomeTree(testutil.FileTree{".config/fish": testutil.FileTree{"conf.d": testutil.FileTree{"a.fish": "2"}}})

	report := run(t, cenv, false)
	assert.Equal(t, 1, report.Collected)
	assert.Equal(t, "2", env.ReadRepo("files/fish/conf.d/a.fish"))
}

func TestCollect_DryRun(t *testing.T) {
	env, cenv := setup(t)
	env.WriteManifest(`entries:
  - source: files/gitconfig
    dest: .gitconfig
    type: copy
`)
	env.WriteRepoFile("files/gitconfig", "old")
	env.WriteHomeFile(".gitconfig", "new")

	report := run(t, cenv, true)
	assert.Equal(t, 1, report.Collected)
	assert.Equal(t, "old", env.ReadRepo("files/gitconfig"))
}

func TestCollect_MissingSourceIsCreated(t *testing.T) {
	env, cenv := setup(t)
	env.WriteManifest(`entries:
  - source: files/new/tool.conf
    dest: .tool.conf
    type: copy
`)
	env.WriteHomeFile(".tool.conf", "home only")

	report := run(t, cenv, false)
	assert.Equal(t, 1, report.Collected)
	assert.Equal(t, "home only", env.ReadRepo("files/new/tool.conf"))
}
