// pkg/commands/publish/publish_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: testutil.TestEnvironment, testutil.FakeRunner
// PURPOSE: Verify the sanitized copy, cleanup pass and public push sequence

package publish_test

import (
	"context"
	"testing"

	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/publish"
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

// simulateRsync makes the fake rsync drop a few files into the output.
func simulateRsync(env *testutil.TestEnvironment) {
	env.Runner.OnRun("rsync", func(runner.Cmd) {
		env.WithRepoTree(testutil.FileTree{"public": testutil.FileTree{
			"README.md": "hi",
			".env":      "SECRET=1",
			"files": testutil.FileTree{
				"fish": testutil.FileTree{"secrets.fish": "set -x TOKEN", "config.fish": "ok"},
			},
			"private_notes": testutil.FileTree{"a": "b"},
			".git":          testutil.FileTree{"private_hook": "kept"},
		}})
	})
}

func TestPublish_SanitizedCopy(t *testing.T) {
	env, cenv := setup(t)
	env.WriteRepoFile("config/publish.yaml", "exclude:\n  - \"*.local\"\n")
	simulateRsync(env)

	result, err := publish.Publish(context.Background(), publish.PublishOptions{Env: cenv, Exclude: []string{"notes"}})
	require.NoError(t, err)

	assert.Equal(t, env.RepoPath("public"), result.Output)
	assert.ElementsMatch(t, []string{".env", "files/fish/secrets.fish", "private_notes"}, result.Removed)
	assert.True(t, testutil.FileExists(t, env.RepoPath("public/files/fish/config.fish")))
	assert.True(t, testutil.FileExists(t, env.RepoPath("public/.git/private_hook")))
	testutil.AssertNoFile(t, env.RepoPath("public/.env"))

	lines := env.Runner.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "rsync -av --delete --exclude .git --exclude public")
	assert.Contains(t, lines[0], "--exclude *.local --exclude notes --exclude /public")
	assert.Contains(t, lines[0], env.DotfilesRoot+"/ "+env.RepoPath("public"))
}

func TestPublish_NoRemoteConfigured(t *testing.T) {
	env, cenv := setup(t)

	result, err := publish.Publish(context.Background(), publish.PublishOptions{Env: cenv, Push: true})
	require.NoError(t, err)
	assert.Empty(t, result.PublicRepo)
	assert.False(t, env.Runner.Ran("git"))
}

func TestPublish_PushFallsBackToMaster(t *testing.T) {
	env, cenv := setup(t)
	env.WriteRepoFile("config/publish.yaml", "public_repo: git@github.com:me/public.git\n")
	env.Runner.
		OnFail("git remote get-url", 2, "No such remote").
		OnStdout("git status --porcelain", "A  README.md").
		OnFail("git push -u origin main", 1, "src refspec main does not match any")

	result, err := publish.Publish(context.Background(), publish.PublishOptions{Env: cenv, Push: true})
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:me/public.git", result.PublicRepo)
	assert.Equal(t, "master", result.Branch)

	var gitLines []string
	for _, l := range env.Runner.Lines() {
		if l[:3] == "git" {
			gitLines = append(gitLines, l)
		}
	}
	assert.Equal(t, []string{
		"git init",
		"git remote get-url origin",
		"git remote add origin git@github.com:me/public.git",
		"git add -A",
		"git status --porcelain",
		"git commit -m update",
		"git push -u origin main --force",
		"git push -u origin master --force",
	}, gitLines)
	for _, c := range env.Runner.Calls() {
		if c.Name == "git" {
			assert.Equal(t, result.Output, c.Dir)
		}
	}
}

func TestPublish_NothingToPush(t *testing.T) {
	env, cenv := setup(t)
	env.Config.Publish.PublicRepo = "git@github.com:me/public.git"
	env.Runner.OnStdout("git remote get-url", "git@github.com:me/public.git")

	result, err := publish.Publish(context.Background(), publish.PublishOptions{Env: cenv, Push: true})
	require.NoError(t, err)
	assert.True(t, result.NoChanges)
	assert.False(t, env.Runner.Ran("git commit"))
}

func TestPublish_RsyncMissing(t *testing.T) {
	env, cenv := setup(t)
	env.Runner.Missing("rsync")

	_, err := publish.Publish(context.Background(), publish.PublishOptions{Env: cenv})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rsync")
}
