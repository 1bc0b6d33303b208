// Package gitsync moves the repository between machines: pull fetches and
// applies, push commits everything and publishes it upstream.
package gitsync

import (
	"context"

	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/apply"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/hooks"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
)

// DefaultMessage is the commit message used when push is given none
const DefaultMessage = "minor fix"

// PullOptions holds options for the pull command
type PullOptions struct {
	Env   *commands.Env
	Force bool
}

// PullResult carries the apply report that follows a successful pull.
type PullResult struct {
	Apply *apply.Report
}

// Pull rebases the repository onto its upstream, then applies it.
func Pull(ctx context.Context, opts PullOptions) (*PullResult, error) {
	env := opts.Env
	logger := logging.GetLogger("commands.pull")
	done := logging.LogOperationStart(logger, "pull")
	defer done()

	if err := env.RunHook(ctx, "pull", hooks.PhasePre); err != nil {
		return nil, err
	}
	if err := env.Git().Pull(ctx, true); err != nil {
		return nil, errors.Wrap(err, errors.GetErrorCode(err), "git pull failed")
	}
	if err := env.RunHook(ctx, "pull", hooks.PhasePost); err != nil {
		return nil, err
	}

	report, err := apply.Apply(ctx, apply.ApplyOptions{Env: env, Force: opts.Force})
	return &PullResult{Apply: report}, err
}

// PushOptions holds options for the push command
type PushOptions struct {
	Env     *commands.Env
	Message string
}

// PushResult describes what push did.
type PushResult struct {
	// Clean is true when there was nothing to commit
	Clean    bool
	DiffStat string
	Message  string
}

// Push stages every change, commits it and pushes to the upstream. A clean
// repository is left alone.
func Push(ctx context.Context, opts PushOptions) (*PushResult, error) {
	env := opts.Env
	logger := logging.GetLogger("commands.push")
	done := logging.LogOperationStart(logger, "push")
	defer done()

	message := opts.Message
	if message == "" {
		message = DefaultMessage
	}
	result := &PushResult{Message: message}

	repo := env.Git()
	clean, err := repo.IsClean(ctx)
	if err != nil {
		return nil, err
	}
	if clean {
		logger.Info().Msg("nothing to commit")
		result.Clean = true
		return result, nil
	}

	if err := env.RunHook(ctx, "push", hooks.PhasePre); err != nil {
		return nil, err
	}
	if err := repo.AddAll(ctx); err != nil {
		return nil, err
	}
	if result.DiffStat, err = repo.DiffStat(ctx); err != nil {
		logger.Warn().Err(err).Msg("cannot summarise changes")
	}
	if err := repo.Commit(ctx, message); err != nil {
		return result, errors.Wrap(err, errors.GetErrorCode(err), "git commit failed")
	}
	if err := repo.Push(ctx); err != nil {
		return result, errors.Wrap(err, errors.GetErrorCode(err), "git push failed")
	}
	if err := env.RunHook(ctx, "push", hooks.PhasePost); err != nil {
		return result, err
	}

	logger.Info().Str("message", message).Msg("pushed")
	return result, nil
}
