package remove

import (
	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

// RemoveOptions holds options for the remove command
type RemoveOptions struct {
	Env *commands.Env

	// Dest names the tracked destination: ".vimrc", "~/.vimrc" or an
	// absolute path inside home
	Dest string
}

// Result describes the untracked entry.
type Result struct {
	Entry types.FileEntry

	// Unlinked is true when a symlink at the destination was deleted
	Unlinked bool
}

// Remove stops tracking a destination. A symlink at the destination is
// deleted; a copied file is left where it is. The repository source is
// never touched.
func Remove(opts RemoveOptions) (*Result, error) {
	env := opts.Env
	logger := logging.GetLogger("commands.remove")
	done := logging.LogOperationStart(logger, "remove")
	defer done()

	key, err := env.DestKey(opts.Dest)
	if err != nil {
		return nil, err
	}

	m, err := env.LoadManifest()
	if err != nil {
		return nil, err
	}

	entry, ok := m.FindByDest(key)
	if !ok {
		return nil, errors.Newf(errors.ErrNotTracked, "not tracked: %s", opts.Dest).WithDetail("dest", key)
	}
	if _, err := m.Remove(key); err != nil {
		return nil, err
	}

	result := &Result{Entry: entry}
	dest := env.DestPath(entry)
	if env.IsLink(dest) {
		if err := env.FS.Remove(dest); err != nil {
			return result, errors.Wrapf(err, errors.ErrFileWrite, "cannot remove link %s", dest)
		}
		result.Unlinked = true
	}

	logger.Info().Str("dest", key).Bool("unlinked", result.Unlinked).Msg("entry removed")
	return result, nil
}
