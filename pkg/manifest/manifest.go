package manifest

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

// Manifest is the ordered set of tracked entries backed by a document on disk.
// Every mutation is persisted immediately.
type Manifest struct {
	fs      types.FS
	path    string
	entries []types.FileEntry
}

// New returns an empty manifest that will be saved to path.
func New(filesystem types.FS, path string) *Manifest {
	return &Manifest{fs: filesystem, path: path}
}

// Load reads the manifest at path. An absent document yields an empty
// manifest. A malformed document yields an empty manifest together with a
// ErrConfigParse or ErrConfigInvalid error, leaving the caller to decide
// whether to proceed; callers that mutate must abort so the broken document
// is not overwritten.
func Load(filesystem types.FS, path string) (*Manifest, error) {
	logger := logging.GetLogger("manifest")
	m := New(filesystem, path)

	data, err := filesystem.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("no manifest found, starting empty")
			return m, nil
		}
		return m, errors.Wrapf(err, errors.ErrFileAccess, "cannot read manifest %s", path).
			WithDetail("path", path)
	}

	raw, err := decode(data)
	if err != nil {
		return m, withPath(err, path)
	}

	for _, r := range raw {
		entry, err := toEntry(r)
		if err != nil {
			return New(filesystem, path), withPath(err, path)
		}
		if m.upsert(entry) {
			logger.Warn().Str("dest", entry.Dest).Int("line", r.line).
				Msg("duplicate destination in manifest, later entry wins")
		}
	}

	logger.Debug().Str("path", path).Int("entries", len(m.entries)).Msg("manifest loaded")
	return m, nil
}

func withPath(err error, path string) error {
	if de, ok := err.(*errors.DotfilesError); ok {
		de.Message = path + ": " + de.Message
		return de.WithDetail("path", path)
	}
	return errors.Wrap(err, errors.ErrConfigParse, path)
}

// Path returns the document location
func (m *Manifest) Path() string {
	return m.path
}

// Entries returns a copy of all entries in manifest order
func (m *Manifest) Entries() []types.FileEntry {
	out := make([]types.FileEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of entries
func (m *Manifest) Len() int {
	return len(m.entries)
}

// FindByDest returns the entry tracking dest, if any.
func (m *Manifest) FindByDest(dest string) (types.FileEntry, bool) {
	if i := m.indexOf(dest); i >= 0 {
		return m.entries[i], true
	}
	return types.FileEntry{}, false
}

// ForPlatform returns the entries that apply on p, in manifest order.
func (m *Manifest) ForPlatform(p types.Platform) []types.FileEntry {
	out := make([]types.FileEntry, 0, len(m.entries))
	for _, e := range m.entries {
		if e.AppliesTo(p) {
			out = append(out, e)
		}
	}
	return out
}

// Add inserts an entry, replacing any existing entry with the same
// destination in place, then persists the manifest.
func (m *Manifest) Add(source, dest string, kind types.Kind, platform types.Platform) error {
	entry, err := toEntry(rawEntry{doc: entryDoc{
		Source:   source,
		Dest:     dest,
		Type:     string(kind),
		Platform: string(platform),
	}})
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "cannot add entry")
	}

	m.upsert(entry)
	return m.Save()
}

// Remove deletes the entry for dest and persists the manifest when one was
// found. It reports whether an entry was removed.
func (m *Manifest) Remove(dest string) (bool, error) {
	i := m.indexOf(dest)
	if i < 0 {
		return false, nil
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	return true, m.Save()
}

// Save writes the manifest in the flat shape.
func (m *Manifest) Save() error {
	data, err := encode(m.entries)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode manifest")
	}

	dir := filepath.Dir(m.path)
	if err := m.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create manifest directory %s", dir).
			WithDetail("path", dir)
	}

	tmp := m.path + ".tmp"
	if err := m.fs.WriteFile(tmp, data, fs.FileMode(0644)); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write manifest %s", m.path).
			WithDetail("path", m.path)
	}
	if err := m.fs.Rename(tmp, m.path); err != nil {
		_ = m.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot replace manifest %s", m.path).
			WithDetail("path", m.path)
	}

	logger := logging.GetLogger("manifest")
	logger.Debug().Str("path", m.path).Int("entries", len(m.entries)).Msg("manifest saved")
	return nil
}

// upsert replaces the entry with the same dest in place or appends a new one.
// It reports whether an existing entry was replaced.
func (m *Manifest) upsert(entry types.FileEntry) bool {
	if i := m.indexOf(entry.Dest); i >= 0 {
		m.entries[i] = entry
		return true
	}
	m.entries = append(m.entries, entry)
	return false
}

func (m *Manifest) indexOf(dest string) int {
	key := types.NormalizeRelPath(dest)
	for i, e := range m.entries {
		if e.Dest == key {
			return i
		}
	}
	return -1
}
