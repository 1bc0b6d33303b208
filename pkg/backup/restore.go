package backup

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
)

// Failure is a record that could not be restored.
type Failure struct {
	Path string
	Err  error
}

// RestoreResult describes a finished restore.
type RestoreResult struct {
	Name     string
	Restored int

	// Verified counts regular files whose digest matched the index
	Verified int
	Failed   []Failure
}

// Restore writes a snapshot back over the home directory. Files whose
// content does not match the indexed digest are reported and left alone.
func (m *Manager) Restore(name string) (*RestoreResult, error) {
	logger := logging.GetLogger("backup")
	p, archive, err := m.Locate(name)
	if err != nil {
		return nil, err
	}

	result := &RestoreResult{Name: strings.TrimSuffix(name, ArchiveExt)}
	if archive {
		err = m.restoreArchive(p, result)
	} else {
		err = m.restoreDir(p, result)
	}
	if err != nil {
		return result, err
	}
	logger.Info().
		Str("backup", result.Name).
		Int("restored", result.Restored).
		Int("failed", len(result.Failed)).
		Msg("backup restored")
	return result, nil
}

func (m *Manager) restoreDir(dir string, result *RestoreResult) error {
	data, err := m.fs.ReadFile(filepath.Join(dir, IndexFile))
	if err != nil {
		return errors.Newf(errors.ErrBackup, "%s has no %s; pre-apply runs cannot be restored automatically", dir, IndexFile).
			WithDetail("path", dir)
	}
	index, err := parseIndex(data, dir)
	if err != nil {
		return err
	}

	for _, r := range index.Files {
		var content []byte
		if r.Type == TypeFile {
			content, err = m.fs.ReadFile(filepath.Join(dir, filesDir, filepath.FromSlash(r.Path)))
			if err != nil {
				result.Failed = append(result.Failed, Failure{Path: r.Path, Err: err})
				continue
			}
		}
		m.apply(r, content, result)
	}
	return nil
}

func (m *Manager) restoreArchive(file string, result *RestoreResult) error {
	ar, err := m.openArchive(file)
	if err != nil {
		return err
	}
	defer ar.Close()

	records := make(map[string]Record, len(ar.index.Files))
	for _, r := range ar.index.Files {
		records[r.Path] = r
	}
	for {
		_, rel, err := ar.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, errors.ErrBackup, "corrupt archive %s", file)
		}
		r, ok := records[rel]
		if !ok {
			result.Failed = append(result.Failed, Failure{Path: rel, Err: errors.New(errors.ErrBackup, "not listed in the index")})
			continue
		}
		var content []byte
		if r.Type == TypeFile {
			if content, err = io.ReadAll(ar.tr); err != nil {
				return errors.Wrapf(err, errors.ErrBackup, "corrupt archive %s", file)
			}
		}
		m.apply(r, content, result)
	}
}

// apply restores one record, recording failures instead of stopping.
func (m *Manager) apply(r Record, content []byte, result *RestoreResult) {
	if err := m.restoreRecord(r, content); err != nil {
		result.Failed = append(result.Failed, Failure{Path: r.Path, Err: err})
		return
	}
	result.Restored++
	if r.Type == TypeFile {
		result.Verified++
	}
}

func (m *Manager) restoreRecord(r Record, content []byte) error {
	clean := path.Clean(r.Path)
	if clean == "." || path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return errors.Newf(errors.ErrBackup, "unsafe path %q", r.Path)
	}
	dest := m.homePath(clean)

	switch r.Type {
	case TypeDir:
		if info, err := m.fs.Lstat(dest); err == nil && (!info.IsDir() || info.Mode()&os.ModeSymlink != 0) {
			if err := m.fs.RemoveAll(dest); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "cannot replace %s", dest)
			}
		}
		if err := m.fs.MkdirAll(dest, r.FileMode(0755)); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dest)
		}
		return nil

	case TypeSymlink:
		if err := m.prepare(dest); err != nil {
			return err
		}
		if err := m.fs.Symlink(r.Target, dest); err != nil {
			return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s", dest)
		}
		return nil

	case TypeFile:
		if got := Digest(content); got != r.Digest {
			return errors.Newf(errors.ErrBackup, "digest mismatch for %s", r.Path).
				WithDetail("expected", r.Digest).
				WithDetail("actual", got)
		}
		if err := m.prepare(dest); err != nil {
			return err
		}
		mode := r.FileMode(0644)
		if err := m.fs.WriteFile(dest, content, mode); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dest)
		}
		if err := m.fs.Chmod(dest, mode); err != nil {
			return errors.Wrapf(err, errors.ErrPermission, "cannot set mode on %s", dest)
		}
		return nil
	}
	return errors.Newf(errors.ErrBackup, "unknown record type %q for %s", r.Type, r.Path)
}

// prepare removes whatever occupies dest and creates its parent.
func (m *Manager) prepare(dest string) error {
	if _, err := m.fs.Lstat(dest); err == nil {
		if err := m.fs.RemoveAll(dest); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot replace %s", dest)
		}
	}
	if err := m.fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(dest))
	}
	return nil
}
