// pkg/commands/gitsync/gitsync_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: testutil.TestEnvironment, testutil.FakeRunner
// PURPOSE: Verify the git command sequences behind pull and push

package gitsync_test

import (
	"context"
	"testing"

	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/gitsync"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/runner"
	"github.com/dotfiles-cli/dotfiles/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*testutil.TestEnvironment, *commands.Env) {
	t.Helper()
	env := testutil.NewTestEnvironment(t)
	return env, commands.New(env.Paths, env.Config, env.FS, env.Runner)
}

func TestPull_ThenApplies(t *testing.T) {
	env, cenv := setup(t)
	// the pull brings in a new manifest entry
	env.Runner.OnRun("git pull", func(runner.Cmd) {
		env.WriteManifest("entries:\n  - source: files/gitconfig\n    dest: .gitconfig\n")
		env.WriteRepoFile("files/gitconfig", "pulled")
	})

	result, err := gitsync.Pull(context.Background(), gitsync.PullOptions{Env: cenv})
	require.NoError(t, err)
	assert.Equal(t, []string{"git pull --rebase"}, env.Runner.Lines())
	assert.Equal(t, 1, result.Apply.Applied)
	testutil.AssertSymlink(t, env.HomePath(".gitconfig"), env.RepoPath("files/gitconfig"))
}

func TestPull_FailureSkipsApply(t *testing.T) {
	env, cenv := setup(t)
	env.WriteManifest("entries:\n  - source: files/gitconfig\n    dest: .gitconfig\n")
	env.WriteRepoFile("files/gitconfig", "x")
	env.Runner.OnFail("git pull", 1, "CONFLICT (content)")

	_, err := gitsync.Pull(context.Background(), gitsync.PullOptions{Env: cenv})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrToolFailed))
	testutil.AssertNoFile(t, env.HomePath(".gitconfig"))
}

func TestPush_CleanIsNoop(t *testing.T) {
	env, cenv := setup(t)

	result, err := gitsync.Push(context.Background(), gitsync.PushOptions{Env: cenv})
	require.NoError(t, err)
	assert.True(t, result.Clean)
	assert.Equal(t, []string{"git status --porcelain"}, env.Runner.Lines())
}

func TestPush_CommitsAndPushes(t *testing.T) {
	env, cenv := setup(t)
	env.Runner.
		OnStdout("git status --porcelain", " M config/files.yaml").
		OnStdout("git diff --cached --stat", " config/files.yaml | 2 +-")

	result, err := gitsync.Push(context.Background(), gitsync.PushOptions{Env: cenv})
	require.NoError(t, err)
	assert.False(t, result.Clean)
	assert.Equal(t, gitsync.DefaultMessage, result.Message)
	assert.Equal(t, "config/files.yaml | 2 +-", result.DiffStat)
	assert.Equal(t, []string{
		"git status --porcelain",
		"git add -A",
		"git diff --cached --stat",
		"git commit -m minor fix",
		"git push",
	}, env.Runner.Lines())
}

func TestPush_PushFailure(t *testing.T) {
	env, cenv := setup(t)
	env.Runner.
		OnStdout("git status --porcelain", "?? new").
		OnFail("git push", 1, "rejected")

	_, err := gitsync.Push(context.Background(), gitsync.PushOptions{Env: cenv, Message: "update vim"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git push failed")
	assert.True(t, env.Runner.Ran("git commit -m update vim"))
}
