// pkg/topics/topics_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: testing/fstest, cobra
// PURPOSE: Test topic discovery, lookup and the help command override

package topics_test

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/topics"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"manifest.md":        {Data: []byte("# Manifest\n\nentries")},
		"option-dry-run.txt": {Data: []byte("nothing is written")},
		"guides/sync.md":     {Data: []byte("# Sync")},
		"notes.json":         {Data: []byte("{}")},
	}
}

func TestNew_ScansSupportedExtensions(t *testing.T) {
	m, err := topics.New(testFS(), topics.Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"manifest", "option-dry-run", "sync"}, m.List())

	topic, ok := m.Get("manifest")
	require.True(t, ok)
	assert.Equal(t, "# Manifest\n\nentries", topic.Content)

	_, ok = m.Get("notes")
	assert.False(t, ok)
}

func TestNew_CustomExtensions(t *testing.T) {
	m, err := topics.New(testFS(), topics.Options{Extensions: []string{".json"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes"}, m.List())
}

func TestGet_FlagSpellings(t *testing.T) {
	m, err := topics.New(testFS(), topics.Options{})
	require.NoError(t, err)

	for _, name := range []string{"option-dry-run", "dry-run", "--dry-run", "-dry-run"} {
		topic, ok := m.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-dry-run", topic.Name)
	}
}

func TestShow(t *testing.T) {
	m, err := topics.New(testFS(), topics.Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, m.Show(&out, "dry-run"))
	assert.Equal(t, "nothing is written", out.String())

	err = m.Show(&out, "nope")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.Contains(t, errors.Hint(err), "help topics")
}

func TestWriteIndex(t *testing.T) {
	m, err := topics.New(testFS(), topics.Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	m.WriteIndex(&out, "dotfiles")
	assert.Contains(t, out.String(), "General topics:\n  manifest\n  sync")
	assert.Contains(t, out.String(), "Option topics:\n  --dry-run")

	empty, err := topics.New(fstest.MapFS{}, topics.Options{})
	require.NoError(t, err)
	out.Reset()
	empty.WriteIndex(&out, "dotfiles")
	assert.Equal(t, "No help topics available.\n", out.String())
}

func TestBuiltin(t *testing.T) {
	m, err := topics.Builtin(topics.Options{})
	require.NoError(t, err)
	for _, name := range []string{"manifest", "templates", "hooks", "dry-run", "force"} {
		_, ok := m.Get(name)
		assert.True(t, ok, name)
	}
}

func TestInstall_HelpCommand(t *testing.T) {
	m, err := topics.New(testFS(), topics.Options{})
	require.NoError(t, err)

	root := &cobra.Command{Use: "dotfiles"}
	root.AddCommand(&cobra.Command{Use: "apply", Short: "Apply entries", Run: func(*cobra.Command, []string) {}})
	m.Install(root)

	run := func(args ...string) string {
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(args)
		require.NoError(t, root.Execute())
		return out.String()
	}

	assert.Contains(t, run("help", "topics"), "Available help topics:")
	assert.Equal(t, "# Sync", run("help", "sync"))
	assert.Contains(t, run("help", "apply"), "Apply entries")
}
