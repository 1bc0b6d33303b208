// pkg/types/types_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test parsing and display of the shared value types

package types_test

import (
	"testing"

	"github.com/dotfiles-cli/dotfiles/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    types.Kind
		wantErr bool
	}{
		{"", types.KindSymlink, false},
		{"symlink", types.KindSymlink, false},
		{" Copy ", types.KindCopy, false},
		{"hardlink", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := types.ParseKind(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		input   string
		want    types.Platform
		wantErr bool
	}{
		{"", types.PlatformAll, false},
		{"all", types.PlatformAll, false},
		{"macos", types.PlatformDarwin, false},
		{"mac", types.PlatformDarwin, false},
		{"Linux", types.PlatformLinux, false},
		{"windows", types.PlatformWindows, false},
		{"plan9", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := types.ParsePlatform(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlatformMatches(t *testing.T) {
	assert.True(t, types.PlatformAll.Matches(types.PlatformLinux))
	assert.True(t, types.PlatformLinux.Matches(types.PlatformLinux))
	assert.False(t, types.PlatformDarwin.Matches(types.PlatformLinux))
	assert.Equal(t, "all", types.PlatformAll.String())
}

func TestNormalizeRelPath(t *testing.T) {
	assert.Equal(t, ".config/nvim", types.NormalizeRelPath("~/.config/nvim/"))
	assert.Equal(t, ".vimrc", types.NormalizeRelPath("./.vimrc"))
	assert.Equal(t, "a/b", types.NormalizeRelPath(`a\b`))
	assert.Equal(t, "", types.NormalizeRelPath("  "))
}

func TestFileEntryString(t *testing.T) {
	e := types.FileEntry{Source: "files/gitconfig", Dest: ".gitconfig", Kind: types.KindSymlink}
	assert.Equal(t, "~/.gitconfig", e.DisplayDest())
	assert.Equal(t, "symlink files/gitconfig -> ~/.gitconfig", e.String())

	e.Platform = types.PlatformDarwin
	assert.Equal(t, "symlink files/gitconfig -> ~/.gitconfig [darwin]", e.String())
	assert.False(t, e.AppliesTo(types.PlatformLinux))
}

func TestStatusAndAction(t *testing.T) {
	assert.Equal(t, "wrong link", types.StatusWrong.Label())
	assert.Equal(t, "broken link", types.StatusBroken.Label())
	assert.False(t, types.StatusOK.NeedsAttention())
	assert.True(t, types.StatusChanged.NeedsAttention())

	assert.True(t, types.ActionOK.Succeeded())
	assert.True(t, types.ActionCopied.Succeeded())
	assert.False(t, types.ActionConflict.Succeeded())
}

func TestIssues(t *testing.T) {
	issues := []types.Issue{
		{Document: "files.yaml", Severity: types.SeverityError, Line: 3, Message: "missing dest"},
		{Document: "files.yaml", Severity: types.SeverityWarning, Message: "source not found: x"},
	}
	assert.Equal(t, 1, types.CountErrors(issues))
	assert.Equal(t, "files.yaml:3: missing dest", issues[0].String())
	assert.Equal(t, "files.yaml: source not found: x", issues[1].String())
}

func TestPlatformFromTag(t *testing.T) {
	assert.Equal(t, types.PlatformDarwin, types.PlatformFromTag("macos"))
	assert.Equal(t, types.PlatformAll, types.PlatformFromTag(""))

	inert := types.PlatformFromTag(" FreeBSD ")
	assert.Equal(t, types.Platform("freebsd"), inert)
	assert.False(t, inert.Known())
	assert.True(t, types.PlatformLinux.Known())
	assert.True(t, types.PlatformAll.Known())
	for _, p := range types.Platforms() {
		assert.False(t, inert.Matches(p))
	}
}
