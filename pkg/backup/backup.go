// Package backup keeps named snapshots of tracked home-directory files.
//
// A snapshot is either a directory under the backups root holding
// index.yaml plus a files/ tree, or a single <name>.tar.zst archive with
// the same layout. The index records every file's home-relative path,
// mode, size and BLAKE3 digest, so a restore can verify what it writes.
package backup

import (
	"encoding/hex"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
	"gopkg.in/yaml.v3"
	"lukechampine.com/blake3"
)

const (
	// IndexFile describes a snapshot's contents
	IndexFile = "index.yaml"

	// ArchiveExt marks a compressed snapshot
	ArchiveExt = ".tar.zst"

	filesDir = "files"
)

// EntryType is what a snapshot record holds.
type EntryType string

const (
	TypeFile    EntryType = "file"
	TypeDir     EntryType = "dir"
	TypeSymlink EntryType = "symlink"
)

// Record is one path in a snapshot.
type Record struct {
	Path   string    `yaml:"path"`
	Type   EntryType `yaml:"type"`
	Mode   string    `yaml:"mode,omitempty"`
	Size   int64     `yaml:"size,omitempty"`
	Digest string    `yaml:"blake3,omitempty"`
	Target string    `yaml:"target,omitempty"`
}

// FileMode parses the record's octal permission bits.
func (r Record) FileMode(fallback os.FileMode) os.FileMode {
	m, err := strconv.ParseUint(r.Mode, 8, 32)
	if err != nil {
		return fallback
	}
	return os.FileMode(m).Perm()
}

// Index is the snapshot manifest stored as index.yaml.
type Index struct {
	Name     string         `yaml:"name"`
	Created  time.Time      `yaml:"created"`
	Platform types.Platform `yaml:"platform,omitempty"`
	Home     string         `yaml:"home"`
	Files    []Record       `yaml:"files"`
}

// Totals counts regular files and their combined size.
func (ix *Index) Totals() (int, int64) {
	var n int
	var size int64
	for _, r := range ix.Files {
		if r.Type == TypeFile {
			n++
			size += r.Size
		}
	}
	return n, size
}

// Info summarises a snapshot for listing.
type Info struct {
	Name    string
	Path    string
	Archive bool

	// Indexed is false for pre-apply runs, which carry no index
	Indexed bool
	Created time.Time
	Files   int
	Size    int64
}

// Manager creates, restores and lists snapshots under one root.
type Manager struct {
	fs   types.FS
	root string
	home string
}

// New creates a Manager storing snapshots in root for the home directory home
func New(fs types.FS, root, home string) *Manager {
	return &Manager{fs: fs, root: root, home: home}
}

// Root returns the backups directory
func (m *Manager) Root() string {
	return m.root
}

// Digest returns the hex BLAKE3-256 digest of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// CreateOptions selects what a snapshot holds.
type CreateOptions struct {
	// Name defaults to the creation timestamp
	Name string

	// Dests are home-relative paths; absent ones are skipped
	Dests []string

	Archive  bool
	Platform types.Platform
	Now      time.Time
}

// CreateResult describes a written snapshot.
type CreateResult struct {
	Info
	Skipped []string
}

// Create snapshots the given destinations.
func (m *Manager) Create(opts CreateOptions) (*CreateResult, error) {
	logger := logging.GetLogger("backup")
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	name := opts.Name
	if name == "" {
		name = now.Format("20060102_150405")
	}
	if err := checkName(name); err != nil {
		return nil, err
	}
	if m.exists(filepath.Join(m.root, name)) || m.exists(filepath.Join(m.root, name+ArchiveExt)) {
		return nil, errors.Newf(errors.ErrAlreadyExists, "backup %s already exists", name).WithDetail("name", name)
	}

	index := &Index{Name: name, Created: now.UTC().Truncate(time.Second), Platform: opts.Platform, Home: m.home}
	result := &CreateResult{}
	seen := map[string]bool{}
	for _, dest := range opts.Dests {
		rel := types.NormalizeRelPath(dest)
		if seen[rel] {
			continue
		}
		seen[rel] = true
		if _, err := m.fs.Lstat(m.homePath(rel)); err != nil {
			result.Skipped = append(result.Skipped, rel)
			continue
		}
		if err := m.collect(rel, &index.Files); err != nil {
			return nil, err
		}
	}

	var err error
	if opts.Archive {
		result.Path = filepath.Join(m.root, name+ArchiveExt)
		err = m.writeArchive(result.Path, index)
	} else {
		result.Path = filepath.Join(m.root, name)
		err = m.writeDir(result.Path, index)
	}
	if err != nil {
		_ = m.fs.RemoveAll(result.Path)
		return nil, err
	}

	result.Name = name
	result.Archive = opts.Archive
	result.Indexed = true
	result.Created = index.Created
	result.Files, result.Size = index.Totals()
	logger.Info().Str("backup", name).Int("files", result.Files).Bool("archive", opts.Archive).Msg("backup created")
	return result, nil
}

func checkName(name string) error {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.HasSuffix(name, ArchiveExt) {
		return errors.Newf(errors.ErrInvalidInput, "invalid backup name %q", name)
	}
	return nil
}

func (m *Manager) exists(p string) bool {
	_, err := m.fs.Lstat(p)
	return err == nil
}

func (m *Manager) homePath(rel string) string {
	return filepath.Join(m.home, filepath.FromSlash(rel))
}

// collect appends records for rel and everything below it, parents first.
func (m *Manager) collect(rel string, out *[]Record) error {
	abs := m.homePath(rel)
	info, err := m.fs.Lstat(abs)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", abs)
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := m.fs.Readlink(abs)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot read link %s", abs)
		}
		*out = append(*out, Record{Path: rel, Type: TypeSymlink, Target: target})
	case info.IsDir():
		*out = append(*out, Record{Path: rel, Type: TypeDir, Mode: formatMode(info.Mode())})
		entries, err := m.fs.ReadDir(abs)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", abs)
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		sort.Strings(names)
		for _, n := range names {
			if err := m.collect(path.Join(rel, n), out); err != nil {
				return err
			}
		}
	default:
		data, err := m.fs.ReadFile(abs)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", abs)
		}
		*out = append(*out, Record{
			Path:   rel,
			Type:   TypeFile,
			Mode:   formatMode(info.Mode()),
			Size:   int64(len(data)),
			Digest: Digest(data),
		})
	}
	return nil
}

func formatMode(mode os.FileMode) string {
	return fmt.Sprintf("%04o", uint32(mode.Perm()))
}

func (m *Manager) writeDir(dir string, index *Index) error {
	if err := m.fs.MkdirAll(filepath.Join(dir, filesDir), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dir)
	}
	for _, r := range index.Files {
		src := m.homePath(r.Path)
		dst := filepath.Join(dir, filesDir, filepath.FromSlash(r.Path))
		var err error
		switch r.Type {
		case TypeDir:
			err = m.fs.MkdirAll(dst, 0755)
		case TypeSymlink:
			err = m.fs.Symlink(r.Target, dst)
		default:
			var data []byte
			if data, err = m.fs.ReadFile(src); err == nil {
				err = m.fs.WriteFile(dst, data, r.FileMode(0644))
			}
		}
		if err != nil {
			return errors.Wrapf(err, errors.ErrBackup, "cannot back up %s", r.Path)
		}
	}

	data, err := yaml.Marshal(index)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot encode backup index")
	}
	if err := m.fs.WriteFile(filepath.Join(dir, IndexFile), data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", IndexFile)
	}
	return nil
}

func parseIndex(data []byte, source string) (*Index, error) {
	var index Index
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid backup index in %s", source)
	}
	return &index, nil
}

// List returns every snapshot, oldest first. A missing root yields none.
func (m *Manager) List() ([]Info, error) {
	entries, err := m.fs.ReadDir(m.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", m.root)
	}

	var out []Info
	for _, e := range entries {
		p := filepath.Join(m.root, e.Name())
		switch {
		case e.IsDir():
			out = append(out, m.dirInfo(e.Name(), p))
		case strings.HasSuffix(e.Name(), ArchiveExt):
			info := Info{Name: strings.TrimSuffix(e.Name(), ArchiveExt), Path: p, Archive: true}
			if index, err := m.readArchiveIndex(p); err == nil {
				info.Indexed = true
				info.Created = index.Created
				info.Files, info.Size = index.Totals()
			}
			out = append(out, info)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.Before(out[j].Created)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *Manager) dirInfo(name, dir string) Info {
	info := Info{Name: name, Path: dir}
	if data, err := m.fs.ReadFile(filepath.Join(dir, IndexFile)); err == nil {
		if index, err := parseIndex(data, dir); err == nil {
			info.Indexed = true
			info.Created = index.Created
			info.Files, info.Size = index.Totals()
			return info
		}
	}
	if st, err := m.fs.Stat(dir); err == nil {
		info.Created = st.ModTime()
	}
	info.Files, info.Size = m.walkTotals(dir)
	return info
}

func (m *Manager) walkTotals(dir string) (int, int64) {
	entries, err := m.fs.ReadDir(dir)
	if err != nil {
		return 0, 0
	}
	var n int
	var size int64
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		if e.IsDir() {
			cn, cs := m.walkTotals(p)
			n += cn
			size += cs
			continue
		}
		if info, err := m.fs.Lstat(p); err == nil {
			n++
			size += info.Size()
		}
	}
	return n, size
}

// Locate returns the snapshot path for name and whether it is an archive.
func (m *Manager) Locate(name string) (string, bool, error) {
	name = strings.TrimSuffix(name, ArchiveExt)
	if err := checkName(name); err != nil {
		return "", false, err
	}
	dir := filepath.Join(m.root, name)
	if info, err := m.fs.Stat(dir); err == nil && info.IsDir() {
		return dir, false, nil
	}
	archive := dir + ArchiveExt
	if m.exists(archive) {
		return archive, true, nil
	}
	return "", false, errors.Newf(errors.ErrNotFound, "backup %s not found", name).
		WithDetail("name", name).
		WithDetail("hint", "run 'dotfiles backup list' to see available backups")
}
