// pkg/commands/validate/validate_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: testutil.TestEnvironment
// PURPOSE: Verify findings aggregated across repository documents

package validate_test

import (
	"context"
	"testing"

	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/validate"
	"github.com/dotfiles-cli/dotfiles/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, env *testutil.TestEnvironment) *validate.Report {
	t.Helper()
	cenv := commands.New(env.Paths, env.Config, env.FS, env.Runner)
	report, err := validate.Validate(context.Background(), validate.ValidateOptions{Env: cenv})
	require.NoError(t, err)
	return report
}

func document(t *testing.T, r *validate.Report, name string) validate.Document {
	t.Helper()
	for _, d := range r.Documents {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("no result for %s", name)
	return validate.Document{}
}

func TestValidate_CleanRepository(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteRepoFile("files/home/.gitconfig", "[user]")
	env.WriteManifest("entries:\n  - {source: files/home/.gitconfig, dest: .gitconfig}\n")
	env.WriteRepoFile("config/publish.yaml", "public_repo: git@github.com:me/public.git\nexclude: [\"*.local\"]\n")
	env.WriteRepoFile("config/packages.yaml", "rust:\n  - bat\n")
	env.WriteRepoFile(".dotfiles/vars.yaml", "vars:\n  email: me@example.com\n")
	env.WriteRepoFile("config/dotfiles.toml", "[remote]\nconnect_timeout = 10\n")

	report := run(t, env)
	assert.True(t, report.OK())
	assert.Zero(t, report.Warnings())
	require.Len(t, report.Documents, 5)
	for _, d := range report.Documents {
		assert.True(t, d.Present, d.Name)
		assert.True(t, d.Valid(), d.Name)
	}
}

func TestValidate_OptionalDocumentsAbsent(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteManifest("entries: []\n")

	report := run(t, env)
	assert.True(t, report.OK())
	pub := document(t, report, "publish.yaml")
	assert.False(t, pub.Present)
	assert.True(t, pub.Optional)
	assert.Empty(t, pub.Issues)
}

func TestValidate_MissingManifestWarns(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	report := run(t, env)
	assert.True(t, report.OK())
	assert.Equal(t, 1, report.Warnings())
	assert.False(t, document(t, report, "files.yaml").Present)
}

func TestValidate_Findings(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteManifest("entries:\n  - {source: files/absent, dest: .absent}\n  - {dest: .nosource}\n")
	env.WriteRepoFile("config/publish.yaml", "public_repo: somewhere\n")
	env.WriteRepoFile("config/packages.yaml", "- not a mapping\n")
	env.WriteRepoFile(".dotfiles/vars.yaml", "vars: [a, b]\n")
	env.WriteRepoFile("config/dotfiles.toml", "[backup\n")

	report := run(t, env)
	assert.False(t, report.OK())

	files := document(t, report, "files.yaml")
	assert.False(t, files.Valid())
	assert.Len(t, files.Issues, 2)

	pub := document(t, report, "publish.yaml")
	assert.True(t, pub.Valid())
	require.Len(t, pub.Issues, 1)
	assert.Contains(t, pub.Issues[0].Message, "public_repo looks invalid")

	assert.False(t, document(t, report, "packages.yaml").Valid())
	assert.False(t, document(t, report, "vars.yaml").Valid())
	assert.False(t, document(t, report, "dotfiles.toml").Valid())
	assert.Equal(t, 4, report.Errors())
	assert.Equal(t, 2, report.Warnings())
}
