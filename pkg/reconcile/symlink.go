package reconcile

import (
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

// Symlinks reconciles entries whose destination is a link into the repository.
type Symlinks struct {
	fs types.FS
}

// NewSymlinks creates the symlink reconciler
func NewSymlinks(fs types.FS) *Symlinks {
	return &Symlinks{fs: fs}
}

func (s *Symlinks) Kind() types.Kind {
	return types.KindSymlink
}

// Check reports missing, conflict, broken, wrong or ok.
func (s *Symlinks) Check(source, dest string) types.Status {
	info, err := s.fs.Lstat(dest)
	if err != nil {
		return types.StatusMissing
	}
	if !isSymlink(info) {
		return types.StatusConflict
	}
	return s.compareLink(source, dest)
}

func (s *Symlinks) compareLink(source, dest string) types.Status {
	resolvedDest, err := s.fs.EvalSymlinks(dest)
	if err != nil {
		return types.StatusBroken
	}
	resolvedSource, err := s.fs.EvalSymlinks(source)
	if err != nil {
		return types.StatusBroken
	}
	if resolvedDest == resolvedSource {
		return types.StatusOK
	}
	return types.StatusWrong
}

// Create links dest to source. An existing link that already resolves to
// source is left alone. Anything else occupying dest is replaced only with
// opts.Force.
func (s *Symlinks) Create(source, dest string, opts Options) (types.Action, error) {
	logger := logging.GetLogger("reconcile.symlink").With().Str("dest", dest).Logger()

	if err := ensureParent(s.fs, dest); err != nil {
		return "", err
	}

	if info, err := s.fs.Lstat(dest); err == nil {
		if isSymlink(info) && s.compareLink(source, dest) == types.StatusOK {
			logger.Trace().Msg("already linked")
			return types.ActionOK, nil
		}
		if !opts.Force {
			logger.Debug().Str("existing", describe(info)).Msg("destination occupied")
			return types.ActionConflict, nil
		}
		logger.Debug().Str("existing", describe(info)).Msg("replacing destination")
		if err := removeExisting(s.fs, dest, info, opts.Backup); err != nil {
			return "", err
		}
	}

	if err := s.fs.Symlink(source, dest); err != nil {
		return "", errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s", dest).
			WithDetail("source", source).
			WithDetail("dest", dest)
	}
	logger.Debug().Str("source", source).Msg("symlink created")
	return types.ActionCreated, nil
}
