// Package publish produces a sanitized copy of the repository that is safe
// to share, optionally force-pushes it to a public remote, and publishes a
// bootstrap script as a GitHub gist.
package publish

import (
	"context"
	"path/filepath"

	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/git"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/runner"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

// DefaultMessage is the commit message for the public copy
const DefaultMessage = "update"

// PublishOptions holds options for the publish command
type PublishOptions struct {
	Env *commands.Env

	// Output overrides the configured output directory
	Output  string
	Exclude []string
	Push    bool
	Message string
}

// Result describes a publish run.
type Result struct {
	Output string

	// Removed lists output-relative paths deleted by the cleanup pass
	Removed []string

	// PublicRepo is the remote pushed to; empty when none is configured
	PublicRepo string
	NoChanges  bool
	Branch     string
}

// Publish mirrors the repository into the output directory without the
// excluded paths, deletes anything matching the cleanup globs that slipped
// through and, when asked and configured, pushes the copy.
func Publish(ctx context.Context, opts PublishOptions) (*Result, error) {
	env := opts.Env
	logger := logging.GetLogger("commands.publish")
	done := logging.LogOperationStart(logger, "publish")
	defer done()

	doc, err := LoadDocument(env.FS, env.Paths.PublishPath())
	if err != nil {
		return nil, err
	}

	output := outputDir(env, opts.Output)
	excludes := Excludes(env, doc, output, opts.Exclude)
	result := &Result{Output: output}

	if err := env.FS.MkdirAll(output, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", output)
	}

	args := []string{"-av", "--delete"}
	for _, p := range excludes {
		args = append(args, "--exclude", p)
	}
	args = append(args, env.Paths.DotfilesRoot()+string(filepath.Separator), output)
	if _, err := env.Runner.Run(ctx, runner.Command("rsync", args...)); err != nil {
		return nil, errors.Wrap(err, errors.GetErrorCode(err), "rsync failed")
	}

	if result.Removed, err = cleanup(env, output, ""); err != nil {
		return result, err
	}
	logger.Info().Str("output", output).Int("removed", len(result.Removed)).Msg("sanitized copy written")

	if !opts.Push {
		return result, nil
	}
	result.PublicRepo = env.Config.Publish.PublicRepo
	if doc.PublicRepo != "" {
		result.PublicRepo = doc.PublicRepo
	}
	if result.PublicRepo == "" {
		return result, nil
	}

	message := opts.Message
	if message == "" {
		message = DefaultMessage
	}
	return result, push(ctx, env, result, message)
}

func outputDir(env *commands.Env, override string) string {
	out := override
	if out == "" {
		out = env.Config.Publish.Output
	}
	out = env.Paths.ExpandHome(out)
	if filepath.IsAbs(out) {
		return filepath.Clean(out)
	}
	return env.Paths.RepoPath(out)
}

// Excludes merges the configured, document and extra patterns. An output
// directory inside the repository is always excluded.
func Excludes(env *commands.Env, doc *Document, output string, extra []string) []string {
	var out []string
	seen := map[string]bool{}
	addAll := func(patterns []string) {
		for _, p := range patterns {
			if p != "" && !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	addAll(env.Config.Publish.Exclude)
	addAll(doc.Exclude)
	addAll(extra)
	if rel, ok := env.Paths.RelToRepo(output); ok {
		addAll([]string{"/" + rel})
	}
	return out
}

// cleanup deletes entries whose base name matches a cleanup glob. The
// output's own .git directory is skipped.
func cleanup(env *commands.Env, root, rel string) ([]string, error) {
	dir := filepath.Join(root, rel)
	entries, err := env.FS.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", dir)
	}

	var removed []string
	for _, e := range entries {
		name := e.Name()
		child := filepath.Join(rel, name)
		if rel == "" && name == ".git" {
			continue
		}
		if env.Config.IsPublishCleanup(name) {
			if err := env.FS.RemoveAll(filepath.Join(root, child)); err != nil {
				return removed, errors.Wrapf(err, errors.ErrFileWrite, "cannot remove %s", child)
			}
			removed = append(removed, filepath.ToSlash(child))
			continue
		}
		if e.IsDir() {
			sub, err := cleanup(env, root, child)
			removed = append(removed, sub...)
			if err != nil {
				return removed, err
			}
		}
	}
	return removed, nil
}

// push commits the output directory and force-pushes it, trying each
// configured branch in turn.
func push(ctx context.Context, env *commands.Env, result *Result, message string) error {
	logger := logging.GetLogger("commands.publish")
	repo := git.New(env.Runner, result.Output)

	if !isDir(env.FS, filepath.Join(result.Output, ".git")) {
		logger.Info().Str("output", result.Output).Msg("initializing public repository")
		if err := repo.Init(ctx); err != nil {
			return err
		}
	}
	if err := repo.SetRemote(ctx, "origin", result.PublicRepo); err != nil {
		return err
	}
	if err := repo.AddAll(ctx); err != nil {
		return err
	}
	clean, err := repo.IsClean(ctx)
	if err != nil {
		return err
	}
	if clean {
		result.NoChanges = true
		return nil
	}
	if err := repo.Commit(ctx, message); err != nil {
		return err
	}

	var lastErr error
	for _, branch := range env.Config.Publish.Branches {
		if lastErr = repo.PushBranch(ctx, "origin", branch, true); lastErr == nil {
			result.Branch = branch
			logger.Info().Str("repo", result.PublicRepo).Str("branch", branch).Msg("public copy pushed")
			return nil
		}
		logger.Debug().Err(lastErr).Str("branch", branch).Msg("push attempt failed")
	}
	if lastErr == nil {
		return errors.New(errors.ErrConfigInvalid, "no branches configured for publishing")
	}
	return errors.Wrap(lastErr, errors.GetErrorCode(lastErr), "push failed")
}

func isDir(fs types.FS, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.IsDir()
}
