// pkg/manifest/manifest_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: in-memory filesystem
// PURPOSE: Verify manifest loading (both shapes), querying and persistence

package manifest_test

import (
	"testing"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/filesystem"
	"github.com/dotfiles-cli/dotfiles/pkg/manifest"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const manifestPath = "/repo/config/files.yaml"

func loadFrom(t *testing.T, content string) (*manifest.Manifest, types.FS) {
	t.Helper()
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/repo/config", 0755))
	require.NoError(t, fs.WriteFile(manifestPath, []byte(content), 0644))
	m, err := manifest.Load(fs, manifestPath)
	require.NoError(t, err)
	return m, fs
}

func TestLoad_AbsentIsEmpty(t *testing.T) {
	m, err := manifest.Load(filesystem.NewMemory(), manifestPath)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, manifestPath, m.Path())
}

func TestLoad_Flat(t *testing.T) {
	m, _ := loadFrom(t, `
entries:
  - source: files/gitconfig
    dest: .gitconfig
    type: symlink
  - source: files/config/fish
    dest: ~/.config/fish/
  - source: files/ssh_config
    dest: .ssh/config
    type: copy
    platform: darwin
`)

	assert.Equal(t, []types.FileEntry{
		{Source: "files/gitconfig", Dest: ".gitconfig", Kind: types.KindSymlink},
		{Source: "files/config/fish", Dest: ".config/fish", Kind: types.KindSymlink},
		{Source: "files/ssh_config", Dest: ".ssh/config", Kind: types.KindCopy, Platform: types.PlatformDarwin},
	}, m.Entries())
}

func TestLoad_LegacyKeepsDocumentOrder(t *testing.T) {
	m, _ := loadFrom(t, `
copies:
  files/ssh_config: .ssh/config
symlinks:
  files/zshrc: .zshrc
  files/bashrc: .bashrc
  files/aliases: .aliases
unknown_section:
  ignored: true
platform:
  linux:
    symlinks:
      platform/linux/xinitrc: .xinitrc
  darwin:
    copies:
      platform/mac/karabiner.json: .config/karabiner/karabiner.json
    symlinks:
      platform/mac/aerospace.toml: .aerospace.toml
`)

	var dests []string
	for _, e := range m.Entries() {
		dests = append(dests, e.Dest)
	}
	assert.Equal(t, []string{
		".zshrc", ".bashrc", ".aliases",
		".ssh/config",
		".xinitrc",
		".aerospace.toml", ".config/karabiner/karabiner.json",
	}, dests)

	entry, ok := m.FindByDest(".config/karabiner/karabiner.json")
	require.True(t, ok)
	assert.Equal(t, types.KindCopy, entry.Kind)
	assert.Equal(t, types.PlatformDarwin, entry.Platform)
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"invalid yaml", "entries: [\n  - source: x", errors.ErrConfigParse},
		{"top level list", "- a\n- b\n", errors.ErrConfigParse},
		{"entries not a list", "entries: files\n", errors.ErrConfigParse},
		{"missing dest", "entries:\n  - source: files/x\n", errors.ErrConfigInvalid},
		{"unknown type", "entries:\n  - {source: a, dest: .a, type: hardlink}\n", errors.ErrConfigInvalid},
		{"absolute dest", "entries:\n  - {source: a, dest: /etc/hosts}\n", errors.ErrConfigInvalid},
		{"escaping source", "symlinks:\n  ../outside: .outside\n", errors.ErrConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := filesystem.NewMemory()
			require.NoError(t, fs.WriteFile(manifestPath, []byte(tt.content), 0644))

			m, err := manifest.Load(fs, manifestPath)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.Equal(t, errors.CategoryConfig, errors.CategoryOf(err))
			require.NotNil(t, m, "caller may proceed with an empty manifest")
			assert.Equal(t, 0, m.Len())
		})
	}
}

func TestLoad_UnknownPlatformOnlyExcludesItsEntry(t *testing.T) {
	m, _ := loadFrom(t, `entries:
  - {source: a, dest: .a, platform: FreeBSD}
  - {source: b, dest: .b}
`)
	require.Equal(t, 2, m.Len())

	entry, ok := m.FindByDest(".a")
	require.True(t, ok)
	assert.Equal(t, types.Platform("freebsd"), entry.Platform)
	assert.False(t, entry.Platform.Known())

	for _, p := range types.Platforms() {
		got := m.ForPlatform(p)
		require.Len(t, got, 1, p.String())
		assert.Equal(t, ".b", got[0].Dest)
	}
}

func TestLoad_EmptyDocument(t *testing.T) {
	m, _ := loadFrom(t, "# nothing tracked yet\n")
	assert.Equal(t, 0, m.Len())
}

func TestForPlatform(t *testing.T) {
	m, _ := loadFrom(t, `
entries:
  - {source: a, dest: .a}
  - {source: b, dest: .b, platform: linux}
  - {source: c, dest: .c, platform: darwin}
  - {source: d, dest: .d}
  - {source: e, dest: .e, platform: darwin}
`)

	var darwin []string
	for _, e := range m.ForPlatform(types.PlatformDarwin) {
		darwin = append(darwin, e.Dest)
	}
	assert.Equal(t, []string{".a", ".c", ".d", ".e"}, darwin)

	var linux []string
	for _, e := range m.ForPlatform(types.PlatformLinux) {
		linux = append(linux, e.Dest)
	}
	assert.Equal(t, []string{".a", ".b", ".d"}, linux)
}

func TestAdd_UpsertsByDest(t *testing.T) {
	m, fs := loadFrom(t, `
entries:
  - {source: files/a, dest: .a}
  - {source: files/b, dest: .b}
`)

	require.NoError(t, m.Add("files/b2", "~/.b", types.KindCopy, types.PlatformLinux))
	assert.Equal(t, 2, m.Len())

	entry, ok := m.FindByDest(".b")
	require.True(t, ok)
	assert.Equal(t, types.FileEntry{Source: "files/b2", Dest: ".b", Kind: types.KindCopy, Platform: types.PlatformLinux}, entry)
	assert.Equal(t, ".b", m.Entries()[1].Dest, "replacement keeps position")

	require.NoError(t, m.Add("files/c", ".c", types.KindSymlink, types.PlatformAll))
	assert.Equal(t, 3, m.Len())

	// persisted immediately
	reloaded, err := manifest.Load(fs, manifestPath)
	require.NoError(t, err)
	assert.Equal(t, m.Entries(), reloaded.Entries())
}

func TestAdd_RejectsInvalid(t *testing.T) {
	m := manifest.New(filesystem.NewMemory(), manifestPath)
	err := m.Add("", ".a", types.KindSymlink, types.PlatformAll)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Equal(t, 0, m.Len())
}

func TestRemove(t *testing.T) {
	m, fs := loadFrom(t, `
entries:
  - {source: files/a, dest: .a}
  - {source: files/b, dest: .b}
`)

	removed, err := m.Remove(".a")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = m.Remove(".missing")
	require.NoError(t, err)
	assert.False(t, removed)

	reloaded, err := manifest.Load(fs, manifestPath)
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.Len())
	assert.Equal(t, ".b", reloaded.Entries()[0].Dest)
}

func TestSave_UpgradesLegacyToFlat(t *testing.T) {
	m, fs := loadFrom(t, `
symlinks:
  files/gitconfig: .gitconfig
platform:
  darwin:
    copies:
      platform/mac/settings.json: .config/app/settings.json
`)
	require.NoError(t, m.Save())

	data, err := fs.ReadFile(manifestPath)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Len(t, raw, 1)
	assert.Contains(t, raw, "entries")

	entries := raw["entries"].([]interface{})
	require.Len(t, entries, 2)
	first := entries[0].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"source": "files/gitconfig", "dest": ".gitconfig", "type": "symlink"}, first,
		"platform omitted when untagged")
	second := entries[1].(map[string]interface{})
	assert.Equal(t, "darwin", second["platform"])
	assert.Equal(t, "copy", second["type"])
}

func TestSave_EmptyWritesNoLists(t *testing.T) {
	fs := filesystem.NewMemory()
	m := manifest.New(fs, manifestPath)
	require.NoError(t, m.Save())

	data, err := fs.ReadFile(manifestPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "entries")

	_, err = fs.Stat(manifestPath + ".tmp")
	assert.Error(t, err, "temporary file is renamed away")
}

func TestLoad_DuplicateDestLaterWins(t *testing.T) {
	m, _ := loadFrom(t, `
entries:
  - {source: files/old, dest: .vimrc}
  - {source: files/other, dest: .other}
  - {source: files/new, dest: ./.vimrc}
`)
	assert.Equal(t, 2, m.Len())
	entry, ok := m.FindByDest(".vimrc")
	require.True(t, ok)
	assert.Equal(t, "files/new", entry.Source)
}
