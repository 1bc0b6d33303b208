// pkg/commands/apply/apply_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: testutil.TestEnvironment (real filesystem in temp dirs)
// PURPOSE: Verify apply end to end: creation, conflicts, force with backup,
// dry runs, idempotence, platform filtering and hooks

package apply_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/apply"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/testutil"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gitconfigManifest = `entries:
  - source: files/gitconfig
    dest: .gitconfig
    type: symlink
`

func newEnv(t *testing.T) (*testutil.TestEnvironment, *commands.Env) {
	t.Helper()
	env := testutil.NewTestEnvironment(t)
	cenv := commands.New(env.Paths, env.Config, env.FS, env.Runner)
	cenv.Now = func() time.Time { return time.Date(2024, 1, 31, 15, 45, 0, 0, time.UTC) }
	return env, cenv
}

func run(t *testing.T, cenv *commands.Env, force, dryRun bool) *apply.Report {
	t.Helper()
	report, err := apply.Apply(context.Background(), apply.ApplyOptions{Env: cenv, Force: force, DryRun: dryRun})
	require.NoError(t, err)
	return report
}

func TestApply_CreatesSymlink(t *testing.T) {
	env, cenv := newEnv(t)
	env.WriteManifest(gitconfigManifest)
	source := env.WriteRepoFile("files/gitconfig", "[user]\n  name = me\n")

	report := run(t, cenv, false, false)

	assert.Equal(t, 1, report.Applied)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 0, report.Errored)
	require.Len(t, report.Items, 1)
	assert.Equal(t, types.ActionCreated, report.Items[0].Action)
	testutil.AssertSymlink(t, env.HomePath(".gitconfig"), source)
	assert.Empty(t, report.BackupDir)
}

func TestApply_IsIdempotent(t *testing.T) {
	env, cenv := newEnv(t)
	env.WriteManifest(`entries:
  - source: files/gitconfig
    dest: .gitconfig
  - source: files/config/tool
    dest: .config/tool
    type: copy
`)
	env.WriteRepoFile("files/gitconfig", "git")
	env.WriteRepoFile("files/config/tool", "tool")

	first := run(t, cenv, false, false)
	require.Equal(t, 2, first.Applied)

	second := run(t, cenv, false, false)
	assert.Equal(t, 2, second.Applied)
	for _, item := range second.Items {
		assert.Equal(t, types.ActionOK, item.Action, item.Entry.Dest)
	}
}

func TestApply_ConflictThenForce(t *testing.T) {
	env, cenv := newEnv(t)
	env.WriteManifest(gitconfigManifest)
	source := env.WriteRepoFile("files/gitconfig", "from repo")
	env.WriteHomeFile(".gitconfig", "local edits")

	report := run(t, cenv, false, false)
	assert.Equal(t, 0, report.Applied)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, types.ActionConflict, report.Items[0].Action)
	assert.Equal(t, "local edits", env.ReadHome(".gitconfig"))

	report = run(t, cenv, true, false)
	assert.Equal(t, 1, report.Applied)
	assert.Equal(t, 0, report.Skipped)
	testutil.AssertSymlink(t, env.HomePath(".gitconfig"), source)

	require.NotEmpty(t, report.BackupDir)
	assert.Equal(t, 1, report.BackupFiles)
	assert.Equal(t, env.RepoPath("backups/pre-apply-20240131_154500"), report.BackupDir)
	testutil.AssertFileContent(t, filepath.Join(report.BackupDir, ".gitconfig"), "local edits")
}

func TestApply_ForceWithoutReplacementsLeavesNoBackup(t *testing.T) {
	env, cenv := newEnv(t)
	env.WriteManifest(gitconfigManifest)
	env.WriteRepoFile("files/gitconfig", "git")

	report := run(t, cenv, true, false)
	assert.Equal(t, 1, report.Applied)
	assert.Empty(t, report.BackupDir)
	assert.False(t, testutil.DirExists(t, env.RepoPath("backups/pre-apply-20240131_154500")))
}

func TestApply_MissingSourceIsCountedAndDoesNotAbort(t *testing.T) {
	env, cenv := newEnv(t)
	env.WriteManifest(`entries:
  - source: files/absent
    dest: .absent
  - source: files/vimrc
    dest: .vimrc
`)
	env.WriteRepoFile("files/vimrc", "set nu")

	report := run(t, cenv, false, false)
	assert.Equal(t, 1, report.Applied)
	assert.Equal(t, 1, report.Errored)
	assert.True(t, errors.IsErrorCode(report.Items[0].Err, errors.ErrFileNotFound))
	testutil.AssertSymlink(t, env.HomePath(".vimrc"), env.RepoPath("files/vimrc"))
}

func TestApply_DryRunMutatesNothing(t *testing.T) {
	env, cenv := newEnv(t)
	env.WriteManifest(`entries:
  - source: files/gitconfig
    dest: .gitconfig
  - source: files/vimrc
    dest: .vimrc
  - source: files/missing
    dest: .missing
`)
	env.WriteRepoFile("files/gitconfig", "git")
	env.WriteRepoFile("files/vimrc", "vim")
	env.WriteHomeFile(".vimrc", "mine")

	report := run(t, cenv, false, true)
	assert.True(t, report.DryRun)
	require.Len(t, report.Items, 3)
	assert.Equal(t, apply.PlanCreate, report.Items[0].Plan)
	assert.Equal(t, apply.PlanSkip, report.Items[1].Plan)
	assert.Equal(t, types.StatusConflict, report.Items[1].Status)
	assert.Equal(t, apply.OutcomeErrored, report.Items[2].Outcome)

	testutil.AssertNoFile(t, env.HomePath(".gitconfig"))
	assert.Equal(t, "mine", env.ReadHome(".vimrc"))

	forced := run(t, cenv, true, true)
	assert.Equal(t, apply.PlanReplace, forced.Items[1].Plan)
	assert.Empty(t, forced.BackupDir)
	_, err := os.Stat(env.RepoPath("backups"))
	assert.True(t, os.IsNotExist(err))
}

func TestApply_DryRunMatchesRealRunForLinkedCopy(t *testing.T) {
	env, cenv := newEnv(t)
	env.WriteManifest(`entries:
  - source: files/npmrc
    dest: .npmrc
    type: copy
`)
	source := env.WriteRepoFile("files/npmrc", "registry=x")
	env.SymlinkHome(".npmrc", source)

	planned := run(t, cenv, false, true)
	require.Len(t, planned.Items, 1)
	assert.Equal(t, apply.PlanOK, planned.Items[0].Plan)
	assert.Equal(t, apply.OutcomeApplied, planned.Items[0].Outcome)

	applied := run(t, cenv, false, false)
	require.Len(t, applied.Items, 1)
	assert.Equal(t, types.ActionOK, applied.Items[0].Action)
	assert.Equal(t, planned.Items[0].Outcome, applied.Items[0].Outcome)
	assert.Equal(t, 0, applied.Skipped)
}

func TestApply_PlatformFiltering(t *testing.T) {
	env, cenv := newEnv(t)
	env.SetPlatform(types.PlatformLinux)
	cenv.Paths = env.Paths
	env.WriteManifest(`entries:
  - source: files/common
    dest: .common
  - source: files/mac
    dest: .mac
    platform: darwin
  - source: files/linux
    dest: .linux
    platform: linux
`)
	env.WriteRepoFile("files/common", "c")
	env.WriteRepoFile("files/mac", "m")
	env.WriteRepoFile("files/linux", "l")

	report := run(t, cenv, false, false)
	assert.Equal(t, 2, report.Applied)
	assert.True(t, testutil.SymlinkExists(t, env.HomePath(".common")))
	assert.True(t, testutil.SymlinkExists(t, env.HomePath(".linux")))
	testutil.AssertNoFile(t, env.HomePath(".mac"))
}

func TestApply_EmptyManifest(t *testing.T) {
	_, cenv := newEnv(t)
	report := run(t, cenv, false, false)
	assert.Empty(t, report.Items)
}

func TestApply_MalformedManifest(t *testing.T) {
	env, cenv := newEnv(t)
	env.WriteManifest("entries: [unclosed")

	_, err := apply.Apply(context.Background(), apply.ApplyOptions{Env: cenv})
	require.Error(t, err)
	assert.Equal(t, errors.CategoryConfig, errors.CategoryOf(err))
}

func TestApply_Hooks(t *testing.T) {
	env, cenv := newEnv(t)
	env.WriteManifest(gitconfigManifest)
	env.WriteRepoFile("files/gitconfig", "git")
	pre := env.WriteRepoFile(".dotfiles/hooks/pre-apply.sh", "true")
	post := env.WriteRepoFile(".dotfiles/hooks/post-apply.fish", "true")

	run(t, cenv, false, false)
	assert.Equal(t, []string{"bash " + pre, "fish " + post}, env.Runner.Lines())

	t.Run("failing pre hook aborts", func(t *testing.T) {
		env.Runner.OnFail("bash", 1, "nope")
		require.NoError(t, os.Remove(env.HomePath(".gitconfig")))

		_, err := apply.Apply(context.Background(), apply.ApplyOptions{Env: cenv})
		require.Error(t, err)
		testutil.AssertNoFile(t, env.HomePath(".gitconfig"))
	})
}
