package reconcile

import (
	"io/fs"
	"path/filepath"

	"github.com/dotfiles-cli/dotfiles/pkg/config"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

const (
	sensitiveFileMode fs.FileMode = 0600
	sensitiveDirMode  fs.FileMode = 0700
)

// Copies reconciles entries whose destination is an independent copy.
type Copies struct {
	fs        types.FS
	home      string
	sensitive []string
}

// NewCopies creates the copy reconciler
func NewCopies(filesystem types.FS, home string, sensitive []string) *Copies {
	return &Copies{fs: filesystem, home: home, sensitive: sensitive}
}

func (c *Copies) Kind() types.Kind {
	return types.KindCopy
}

// Check reports missing, ok or changed. Files are compared byte for byte,
// directories by their immediate contents.
func (c *Copies) Check(source, dest string) types.Status {
	if _, err := c.fs.Lstat(dest); err != nil {
		return types.StatusMissing
	}

	srcInfo, err := c.fs.Stat(source)
	if err != nil {
		return types.StatusChanged
	}
	destInfo, err := c.fs.Stat(dest)
	if err != nil {
		return types.StatusChanged
	}

	var equal bool
	switch {
	case srcInfo.Mode().IsRegular() && destInfo.Mode().IsRegular():
		equal, err = FilesEqual(c.fs, source, dest)
	case srcInfo.IsDir() && destInfo.IsDir():
		equal, err = DirsShallowEqual(c.fs, source, dest)
	}
	if err != nil || !equal {
		return types.StatusChanged
	}
	return types.StatusOK
}

// Create copies source over dest. A byte-identical regular file is left
// alone, also when dest is a link to one, so Create agrees with Check.
// Anything else at dest is replaced only with opts.Force.
func (c *Copies) Create(source, dest string, opts Options) (types.Action, error) {
	logger := logging.GetLogger("reconcile.copy").With().Str("dest", dest).Logger()

	if err := ensureParent(c.fs, dest); err != nil {
		return "", err
	}

	if info, err := c.fs.Lstat(dest); err == nil {
		if c.identicalFiles(source, dest) {
			logger.Trace().Msg("already identical")
			return types.ActionOK, nil
		}
		if !opts.Force {
			logger.Debug().Str("existing", describe(info)).Msg("destination occupied")
			return types.ActionConflict, nil
		}
		logger.Debug().Str("existing", describe(info)).Msg("replacing destination")
		if err := removeExisting(c.fs, dest, info, opts.Backup); err != nil {
			return "", err
		}
	}

	if _, err := CopyTree(c.fs, source, dest); err != nil {
		return "", err
	}

	if c.isSensitive(dest) {
		if err := restrict(c.fs, dest); err != nil {
			return "", err
		}
		logger.Debug().Msg("restricted permissions on sensitive destination")
	}

	logger.Debug().Str("source", source).Msg("copied")
	return types.ActionCopied, nil
}

// identicalFiles follows links on both sides.
func (c *Copies) identicalFiles(source, dest string) bool {
	srcInfo, err := c.fs.Stat(source)
	if err != nil || !srcInfo.Mode().IsRegular() {
		return false
	}
	destInfo, err := c.fs.Stat(dest)
	if err != nil || !destInfo.Mode().IsRegular() {
		return false
	}
	equal, err := FilesEqual(c.fs, source, dest)
	return err == nil && equal
}

func (c *Copies) isSensitive(dest string) bool {
	rel, err := filepath.Rel(c.home, dest)
	if err != nil {
		rel = dest
	}
	return config.MatchesSensitive(c.sensitive, filepath.ToSlash(rel))
}

// restrict makes path owner-only: 0600 for files, 0700 for directories.
func restrict(filesystem types.FS, path string) error {
	info, err := filesystem.Lstat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path)
	}
	if isSymlink(info) {
		return nil
	}

	mode := sensitiveFileMode
	if info.IsDir() {
		mode = sensitiveDirMode
	}
	if err := filesystem.Chmod(path, mode); err != nil {
		return errors.Wrapf(err, errors.ErrPermission, "cannot restrict permissions on %s", path)
	}
	if !info.IsDir() {
		return nil
	}

	entries, err := filesystem.ReadDir(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}
	for _, e := range entries {
		if err := restrict(filesystem, filepath.Join(path, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
