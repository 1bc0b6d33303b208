package reconcile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

// Options control how Create treats an occupied destination.
type Options struct {
	// Force replaces whatever occupies the destination
	Force bool

	// Backup, when set, receives a copy of anything Force replaces
	Backup *Backup
}

// Reconciler checks and creates one kind of destination.
type Reconciler interface {
	Kind() types.Kind

	// Check compares source against dest without touching either.
	Check(source, dest string) types.Status

	// Create makes dest represent source.
	Create(source, dest string, opts Options) (types.Action, error)
}

// Set holds one reconciler per kind.
type Set struct {
	Symlinks *Symlinks
	Copies   *Copies
}

// NewSet builds the reconcilers for a home directory. sensitive lists the
// substrings that mark a copied destination as owner-only.
func NewSet(fs types.FS, home string, sensitive []string) *Set {
	return &Set{
		Symlinks: NewSymlinks(fs),
		Copies:   NewCopies(fs, home, sensitive),
	}
}

// For returns the reconciler responsible for kind.
func (s *Set) For(kind types.Kind) (Reconciler, error) {
	switch kind {
	case types.KindSymlink:
		return s.Symlinks, nil
	case types.KindCopy:
		return s.Copies, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "no reconciler for entry type %q", kind)
	}
}

// removeExisting removes whatever occupies path after backing it up. Directories are
// removed recursively only when they are real directories, never through a
// symlink.
func removeExisting(fs types.FS, path string, info os.FileInfo, backup *Backup) error {
	if backup != nil {
		if err := backup.Save(path); err != nil {
			return err
		}
	}

	var err error
	if info.IsDir() && info.Mode()&os.ModeSymlink == 0 {
		err = fs.RemoveAll(path)
	} else {
		err = fs.Remove(path)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot remove %s", path).WithDetail("path", path)
	}
	return nil
}

func ensureParent(fs types.FS, path string) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", dir).WithDetail("path", dir)
	}
	return nil
}

func isSymlink(info os.FileInfo) bool {
	return info.Mode()&os.ModeSymlink != 0
}

func describe(info os.FileInfo) string {
	switch {
	case isSymlink(info):
		return "symlink"
	case info.IsDir():
		return "directory"
	case info.Mode().IsRegular():
		return "file"
	default:
		return fmt.Sprintf("special file (%s)", info.Mode().Type())
	}
}
