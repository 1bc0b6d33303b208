package add

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/manifest"
	"github.com/dotfiles-cli/dotfiles/pkg/paths"
	"github.com/dotfiles-cli/dotfiles/pkg/reconcile"
	"github.com/dotfiles-cli/dotfiles/pkg/transaction"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

// Suffixes for the temporary siblings used while swapping files around
const (
	stashSuffix    = ".dotfiles-prev"
	originalSuffix = ".dotfiles-orig"
)

// AddOptions holds options for the add command
type AddOptions struct {
	Env *commands.Env

	// Path is the file to track: absolute, ~-prefixed or relative to the
	// working directory
	Path     string
	Kind     types.Kind
	Secret   bool
	Platform types.Platform
}

// Result describes a newly tracked entry.
type Result struct {
	Entry types.FileEntry

	// Replaced is true when the destination was already tracked
	Replaced bool

	// Linked is true when the original was replaced by a symlink
	Linked bool
}

// Classify derives the repository location for a home-relative path.
// Secrets go to secrets/<name>, anything under .config/ to files/config/,
// other hidden paths to files/home/ and the rest to files/.
func Classify(dest string, secret bool) string {
	dest = types.NormalizeRelPath(dest)
	switch {
	case secret:
		return path.Join(paths.SecretsDirName, path.Base(dest))
	case strings.HasPrefix(dest, ".config/"):
		return path.Join("files/config", strings.TrimPrefix(dest, ".config/"))
	case strings.HasPrefix(dest, "."):
		return path.Join("files/home", dest)
	default:
		return path.Join("files", dest)
	}
}

// Add copies a home file or directory into the repository and registers it.
//
// Work happens in two transactions. The first copies into the repository
// and saves the manifest; if either fails the previous repository copy is
// put back. The second, for symlink entries, moves the original aside and
// links it; if linking fails the original is moved back and the entry stays
// tracked so a later apply can finish the job.
func Add(opts AddOptions) (*Result, error) {
	env := opts.Env
	logger := logging.GetLogger("commands.add")
	done := logging.LogOperationStart(logger, "add")
	defer done()

	kind := opts.Kind
	if kind == "" {
		kind = types.DefaultKind
	}
	if !kind.Valid() {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown entry type %q", kind)
	}

	abs, err := env.Paths.ResolveUserPath(opts.Path)
	if err != nil {
		return nil, err
	}
	if !env.Exists(abs) {
		return nil, errors.Newf(errors.ErrNotFound, "file not found: %s", opts.Path).WithDetail("path", abs)
	}
	if env.IsLink(abs) {
		return nil, linkError(env, abs, opts.Path)
	}

	dest, err := env.Paths.RelToHome(abs)
	if err != nil {
		return nil, err
	}
	if env.Paths.IsInRepo(abs) {
		return nil, errors.Newf(errors.ErrInvalidInput, "cannot track a path inside the repository: %s", opts.Path)
	}

	m, err := env.LoadManifest()
	if err != nil {
		return nil, err
	}

	source := Classify(dest, opts.Secret)
	if owner, taken := sourceOwner(m, source, dest); taken {
		return nil, errors.Newf(errors.ErrAlreadyExists, "%s already holds ~/%s", source, owner.Dest).
			WithDetail("source", source).
			WithDetail("hint", "remove that entry first or add the file under another name")
	}
	repoPath := env.Paths.RepoPath(source)
	_, replaced := m.FindByDest(dest)

	logger.Info().
		Str("path", abs).
		Str("source", source).
		Str("dest", dest).
		Str("kind", string(kind)).
		Bool("secret", opts.Secret).
		Msg("adding file")

	ctx := context.Background()
	if err := trackSteps(env.FS, m, abs, repoPath, source, dest, kind, opts.Platform).Run(ctx); err != nil {
		return nil, err
	}

	result := &Result{Replaced: replaced}
	result.Entry, _ = m.FindByDest(dest)

	if kind == types.KindSymlink {
		if err := linkSteps(env.FS, abs, repoPath).Run(ctx); err != nil {
			return result, err
		}
		result.Linked = true
		if err := env.FS.RemoveAll(abs + originalSuffix); err != nil {
			logger.Warn().Err(err).Str("path", abs+originalSuffix).Msg("could not remove moved original")
		}
	}

	logger.Info().Str("dest", dest).Bool("linked", result.Linked).Msg("file added")
	return result, nil
}

// sourceOwner finds another entry already backed by source.
func sourceOwner(m *manifest.Manifest, source, dest string) (types.FileEntry, bool) {
	for _, e := range m.Entries() {
		if e.Source == source && e.Dest != dest {
			return e, true
		}
	}
	return types.FileEntry{}, false
}

func linkError(env *commands.Env, abs, input string) error {
	if target, err := env.FS.EvalSymlinks(abs); err == nil && env.Paths.IsInRepo(target) {
		return errors.Newf(errors.ErrAlreadyExists, "already managed: %s links into the repository", input).
			WithDetail("path", abs)
	}
	return errors.Newf(errors.ErrInvalidInput, "cannot add a symlink: %s", input).WithDetail("path", abs)
}

// trackSteps copies abs into the repository and records the entry. An
// existing repository copy is stashed first and dropped only once the
// manifest is saved.
func trackSteps(fs types.FS, m *manifest.Manifest, abs, repoPath, source, dest string, kind types.Kind, platform types.Platform) *transaction.Transaction {
	stashed := false
	aside := repoPath + stashSuffix

	return transaction.New("add").
		Step("stash",
			func() error {
				if _, err := fs.Lstat(repoPath); err != nil {
					return nil
				}
				_ = fs.RemoveAll(aside)
				if err := fs.Rename(repoPath, aside); err != nil {
					return errors.Wrapf(err, errors.ErrFileWrite, "cannot move aside %s", repoPath)
				}
				stashed = true
				return nil
			},
			func() error {
				if !stashed {
					return nil
				}
				_ = fs.RemoveAll(repoPath)
				return fs.Rename(aside, repoPath)
			}).
		Step("copy",
			func() error {
				if err := fs.MkdirAll(filepath.Dir(repoPath), 0755); err != nil {
					return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(repoPath))
				}
				if _, err := reconcile.CopyTree(fs, abs, repoPath); err != nil {
					_ = fs.RemoveAll(repoPath)
					return err
				}
				return nil
			},
			func() error { return fs.RemoveAll(repoPath) }).
		Step("manifest",
			func() error { return m.Add(source, dest, kind, platform) },
			nil).
		Step("drop-stash",
			func() error {
				if stashed {
					_ = fs.RemoveAll(aside)
				}
				return nil
			},
			nil)
}

// linkSteps replaces the original at abs with a link to repoPath. The
// original is left at abs+originalSuffix for the caller to remove.
func linkSteps(fs types.FS, abs, repoPath string) *transaction.Transaction {
	aside := abs + originalSuffix

	return transaction.New("link").
		Step("move-original",
			func() error {
				_ = fs.RemoveAll(aside)
				if err := fs.Rename(abs, aside); err != nil {
					return errors.Wrapf(err, errors.ErrFileWrite, "cannot move original %s", abs)
				}
				return nil
			},
			func() error { return fs.Rename(aside, abs) }).
		Step("link",
			func() error {
				if err := fs.Symlink(repoPath, abs); err != nil {
					return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s", abs).
						WithDetail("source", repoPath)
				}
				return nil
			},
			func() error { return fs.Remove(abs) })
}
