// pkg/manifest/validate_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: in-memory filesystem
// PURPOSE: Verify manifest validation findings

package manifest_test

import (
	"testing"

	"github.com/dotfiles-cli/dotfiles/pkg/filesystem"
	"github.com/dotfiles-cli/dotfiles/pkg/manifest"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/repo/files/a", []byte("a"), 0644))
	require.NoError(t, fs.WriteFile(manifestPath, []byte(`entries:
  - {source: files/a, dest: .a}
  - {source: files/missing, dest: .b}
  - {source: files/a, dest: .a}
  - {source: files/a, dest: .c, type: bogus}
`), 0644))

	issues := manifest.Validate(fs, manifestPath, "/repo")

	assert.Equal(t, 2, types.CountErrors(issues))
	require.Len(t, issues, 3)

	assert.Equal(t, types.SeverityWarning, issues[0].Severity)
	assert.Equal(t, 3, issues[0].Line)
	assert.Contains(t, issues[0].Message, "files/missing")

	assert.Equal(t, types.SeverityError, issues[1].Severity)
	assert.Contains(t, issues[1].Message, "duplicate dest ~/.a")

	assert.Equal(t, types.SeverityError, issues[2].Severity)
	assert.Equal(t, "files.yaml", issues[2].Document)
}

func TestValidate_Absent(t *testing.T) {
	issues := manifest.Validate(filesystem.NewMemory(), manifestPath, "/repo")
	require.Len(t, issues, 1)
	assert.Equal(t, types.SeverityWarning, issues[0].Severity)
}

func TestValidate_Unparseable(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile(manifestPath, []byte(":\n  - ["), 0644))
	issues := manifest.Validate(fs, manifestPath, "/repo")
	require.Len(t, issues, 1)
	assert.Equal(t, types.SeverityError, issues[0].Severity)
}

func TestValidate_UnknownPlatformWarns(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/repo/files/a", []byte("a"), 0644))
	require.NoError(t, fs.WriteFile(manifestPath, []byte(`entries:
  - {source: files/a, dest: .a, platform: beos}
`), 0644))

	issues := manifest.Validate(fs, manifestPath, "/repo")
	require.Len(t, issues, 1)
	assert.Equal(t, types.SeverityWarning, issues[0].Severity)
	assert.Equal(t, 2, issues[0].Line)
	assert.Contains(t, issues[0].Message, `unknown platform "beos"`)
}
