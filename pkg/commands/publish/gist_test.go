// pkg/commands/publish/gist_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: testutil.TestEnvironment, testutil.FakeRunner
// PURPOSE: Verify bootstrap rendering and the gh calls behind gist publishing

package publish_test

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/dotfiles-cli/dotfiles/pkg/commands/publish"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bootstrapScript = "#!/bin/sh\ngit clone {repo} ~/dotfiles\nf() {{ echo ok; }}\n"

func TestRenderBootstrap(t *testing.T) {
	env, cenv := setup(t)
	env.WriteRepoFile("scripts/bootstrap.sh", bootstrapScript)

	t.Run("explicit repo", func(t *testing.T) {
		out, err := publish.RenderBootstrap(context.Background(), cenv, "https://example.com/d.git")
		require.NoError(t, err)
		assert.Equal(t, "#!/bin/sh\ngit clone https://example.com/d.git ~/dotfiles\nf() { echo ok; }\n", out)
	})

	t.Run("origin remote", func(t *testing.T) {
		env.Runner.OnStdout("git remote get-url origin", "git@github.com:me/dotfiles.git\n")
		out, err := publish.RenderBootstrap(context.Background(), cenv, "")
		require.NoError(t, err)
		assert.Contains(t, out, "git clone git@github.com:me/dotfiles.git ~/dotfiles")
	})
}

func TestRenderBootstrap_MissingTemplate(t *testing.T) {
	_, cenv := setup(t)
	_, err := publish.RenderBootstrap(context.Background(), cenv, "x")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestGist_Create(t *testing.T) {
	env, cenv := setup(t)
	env.WriteRepoFile("scripts/bootstrap.sh", bootstrapScript)
	env.Runner.
		OnStdout("gh gist create", "- Creating gist bootstrap.sh\nhttps://gist.github.com/abc123\n").
		OnStdout("gh api user", `{"login":"octo","id":1}`)

	result, err := publish.Gist(context.Background(), publish.GistOptions{Env: cenv, Repo: "r"})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, "abc123", result.ID)
	assert.Equal(t, "https://gist.github.com/abc123", result.URL)
	assert.Equal(t, "curl -fsSL https://gist.githubusercontent.com/octo/abc123/raw/bootstrap.sh | bash", result.OneLiner)
	assert.True(t, env.Runner.Ran("gh auth status"))
}

func TestGist_UpdateDeletesOtherFiles(t *testing.T) {
	env, cenv := setup(t)
	env.WriteRepoFile("scripts/bootstrap.sh", bootstrapScript)
	env.Runner.OnStdout("gh api /gists/abc123", `{"files":{"old.sh":{},"bootstrap.sh":{}}}`)

	result, err := publish.Gist(context.Background(), publish.GistOptions{Env: cenv, GistID: "abc123", Repo: "r"})
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Contains(t, result.OneLiner, "/USERNAME/abc123/")

	var patch []byte
	for _, c := range env.Runner.Calls() {
		if c.Name == "gh" && len(c.Args) > 2 && c.Args[1] == "-X" {
			patch, err = io.ReadAll(c.Stdin)
			require.NoError(t, err)
		}
	}
	require.NotEmpty(t, patch)

	var payload struct {
		Files map[string]*struct {
			Content string `json:"content"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(patch, &payload))
	require.Contains(t, payload.Files, "old.sh")
	assert.Nil(t, payload.Files["old.sh"])
	assert.Contains(t, payload.Files["bootstrap.sh"].Content, "git clone r ~/dotfiles")
}

func TestGist_NotAuthenticated(t *testing.T) {
	env, cenv := setup(t)
	env.Runner.OnFail("gh auth status", 1, "not logged in")

	_, err := publish.Gist(context.Background(), publish.GistOptions{Env: cenv})
	require.Error(t, err)
	assert.Equal(t, "run: gh auth login", errors.Hint(err))
}

func TestGist_GhMissing(t *testing.T) {
	env, cenv := setup(t)
	env.Runner.Missing("gh")

	_, err := publish.Gist(context.Background(), publish.GistOptions{Env: cenv})
	assert.True(t, errors.IsErrorCode(err, errors.ErrToolMissing))
}
