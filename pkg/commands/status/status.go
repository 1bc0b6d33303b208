package status

import (
	"context"

	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/git"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

// Issue is an entry that needs attention.
type Issue struct {
	Entry         types.FileEntry
	Status        types.Status
	SourceMissing bool
}

// GitState is the repository's branch information. Available is false when
// git is missing or the repository is not under version control.
type GitState struct {
	Available bool
	Branch    string
	Tracking  git.Tracking
	Dirty     bool
}

// Result is the overall status of the repository and home directory.
type Result struct {
	Root     string
	Platform types.Platform
	Git      GitState
	Symlinks int
	Copies   int
	Issues   []Issue
}

// InSync reports whether every entry is ok
func (r *Result) InSync() bool {
	return len(r.Issues) == 0
}

// StatusOptions holds options for the status command
type StatusOptions struct {
	Env *commands.Env
}

// Status summarises tracked entries and the repository's git state. It
// never changes anything, git included.
func Status(ctx context.Context, opts StatusOptions) (*Result, error) {
	env := opts.Env
	logger := logging.GetLogger("commands.status")
	done := logging.LogOperationStart(logger, "status")
	defer done()

	m, err := env.LoadManifest()
	if err != nil {
		return nil, err
	}

	result := &Result{
		Root:     env.Paths.DotfilesRoot(),
		Platform: env.Paths.Platform(),
		Git:      gitState(ctx, env),
	}

	set := env.Reconcilers()
	for _, entry := range env.Applicable(m) {
		switch entry.Kind {
		case types.KindSymlink:
			result.Symlinks++
		case types.KindCopy:
			result.Copies++
		}

		source := env.SourcePath(entry)
		if _, err := env.FS.Stat(source); err != nil {
			result.Issues = append(result.Issues, Issue{Entry: entry, SourceMissing: true})
			continue
		}
		r, err := set.For(entry.Kind)
		if err != nil {
			return nil, err
		}
		if s := r.Check(source, env.DestPath(entry)); s != types.StatusOK {
			result.Issues = append(result.Issues, Issue{Entry: entry, Status: s})
		}
	}

	logger.Debug().
		Int("symlinks", result.Symlinks).
		Int("copies", result.Copies).
		Int("issues", len(result.Issues)).
		Msg("status computed")
	return result, nil
}

func gitState(ctx context.Context, env *commands.Env) GitState {
	logger := logging.GetLogger("commands.status")
	repo := env.Git()
	if !repo.IsRepo(ctx) {
		return GitState{}
	}

	state := GitState{Available: true}
	var err error
	if state.Branch, err = repo.CurrentBranch(ctx); err != nil {
		logger.Warn().Err(err).Msg("cannot read current branch")
	}
	if state.Tracking, err = repo.Tracking(ctx); err != nil {
		logger.Warn().Err(err).Msg("cannot compare with upstream")
	}
	if clean, err := repo.IsClean(ctx); err == nil {
		state.Dirty = !clean
	}
	return state
}
