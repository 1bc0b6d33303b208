package reconcile

import (
	"path/filepath"
	"time"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

const (
	// SymlinkRecordSuffix marks a text file recording a backed-up link's target
	SymlinkRecordSuffix = ".symlink"

	// BrokenTarget is recorded for links that did not resolve
	BrokenTarget = "broken"

	// PreApplyPrefix names backup runs created by a forced apply
	PreApplyPrefix = "pre-apply-"
)

// Backup receives copies of destinations that a forced create replaces.
// Paths inside the backup mirror their location relative to home.
type Backup struct {
	fs    types.FS
	dir   string
	home  string
	files int
}

// NewBackup targets dir. The directory is created lazily on the first save.
func NewBackup(fs types.FS, dir, home string) *Backup {
	return &Backup{fs: fs, dir: dir, home: home}
}

// NewRunBackup allocates a timestamped directory under root for one run,
// e.g. backups/pre-apply-20240131_154500.
func NewRunBackup(fs types.FS, root, home, prefix, layout string, now time.Time) *Backup {
	return NewBackup(fs, filepath.Join(root, prefix+now.Format(layout)), home)
}

// Dir returns the backup directory
func (b *Backup) Dir() string {
	return b.dir
}

// Files returns how many files have been written to the backup
func (b *Backup) Files() int {
	return b.files
}

// Save copies the entity at path into the backup. Links are recorded as a
// "<rel>.symlink" text file holding the resolved target or "broken".
func (b *Backup) Save(path string) error {
	info, err := b.fs.Lstat(path)
	if err != nil {
		return nil
	}

	target := filepath.Join(b.dir, b.relative(path))
	if err := b.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrBackup, "cannot create backup directory for %s", path).
			WithDetail("backup", b.dir)
	}

	var n int
	switch {
	case isSymlink(info):
		resolved, err := b.fs.EvalSymlinks(path)
		if err != nil {
			resolved = BrokenTarget
		}
		if err := b.fs.WriteFile(target+SymlinkRecordSuffix, []byte(resolved), 0644); err != nil {
			return errors.Wrapf(err, errors.ErrBackup, "cannot record link %s", path)
		}
		n = 1
	default:
		if existing, err := b.fs.Lstat(target); err == nil {
			if err := removeExisting(b.fs, target, existing, nil); err != nil {
				return err
			}
		}
		n, err = CopyTree(b.fs, path, target)
		if err != nil {
			return errors.Wrapf(err, errors.ErrBackup, "cannot back up %s", path).WithDetail("backup", b.dir)
		}
		// an empty directory still counts as saved
		n = max(n, 1)
	}

	b.files += n
	logger := logging.GetLogger("reconcile.backup")
	logger.Debug().
		Str("path", path).
		Str("backup", target).
		Int("files", n).
		Msg("backed up")
	return nil
}

// Cleanup deletes the backup directory when nothing was written to it.
// It reports whether the directory was removed.
func (b *Backup) Cleanup() (bool, error) {
	if b.files > 0 {
		return false, nil
	}
	if _, err := b.fs.Lstat(b.dir); err != nil {
		return true, nil
	}
	if err := b.fs.RemoveAll(b.dir); err != nil {
		return false, errors.Wrapf(err, errors.ErrBackup, "cannot remove empty backup %s", b.dir)
	}
	return true, nil
}

func (b *Backup) relative(path string) string {
	rel, err := filepath.Rel(b.home, path)
	if err != nil || rel == "." || rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator) {
		return filepath.Base(path)
	}
	return rel
}
