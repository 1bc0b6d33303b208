// Package git wraps the version-control operations the dotfiles commands
// need. Every call goes through a runner.Runner in the repository directory.
package git

import (
	"context"
	"strconv"
	"strings"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/runner"
)

const tool = "git"

// Repo is a git working tree.
type Repo struct {
	runner runner.Runner
	dir    string
}

// Tracking describes how the current branch relates to its upstream.
type Tracking struct {
	HasUpstream bool
	Ahead       int
	Behind      int
}

// New returns a Repo rooted at dir.
func New(r runner.Runner, dir string) *Repo {
	return &Repo{runner: r, dir: dir}
}

// Dir returns the working tree root
func (g *Repo) Dir() string {
	return g.dir
}

func (g *Repo) cmd(args ...string) runner.Cmd {
	return runner.Command(tool, args...).InDir(g.dir)
}

func (g *Repo) output(ctx context.Context, args ...string) (string, error) {
	res, err := g.runner.Run(ctx, g.cmd(args...))
	if err != nil {
		return "", err
	}
	return res.Output(), nil
}

// IsRepo reports whether the directory is inside a git work tree.
func (g *Repo) IsRepo(ctx context.Context) bool {
	res, err := g.runner.Run(ctx, g.cmd("rev-parse", "--is-inside-work-tree").Unchecked())
	return err == nil && res.OK() && res.Output() == "true"
}

// Init creates a new repository
func (g *Repo) Init(ctx context.Context) error {
	_, err := g.output(ctx, "init")
	return err
}

// Status returns the porcelain status output, empty when clean.
func (g *Repo) Status(ctx context.Context) (string, error) {
	return g.output(ctx, "status", "--porcelain")
}

// IsClean reports whether there are no uncommitted changes
func (g *Repo) IsClean(ctx context.Context) (bool, error) {
	s, err := g.Status(ctx)
	if err != nil {
		return false, err
	}
	return s == "", nil
}

// CurrentBranch returns the checked out branch name
func (g *Repo) CurrentBranch(ctx context.Context) (string, error) {
	return g.output(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// Tracking counts commits ahead of and behind the upstream. A branch with
// no upstream is not an error.
func (g *Repo) Tracking(ctx context.Context) (Tracking, error) {
	ahead, ok, err := g.count(ctx, "@{upstream}..HEAD")
	if err != nil || !ok {
		return Tracking{}, err
	}
	behind, ok, err := g.count(ctx, "HEAD..@{upstream}")
	if err != nil || !ok {
		return Tracking{}, err
	}
	return Tracking{HasUpstream: true, Ahead: ahead, Behind: behind}, nil
}

func (g *Repo) count(ctx context.Context, rng string) (int, bool, error) {
	res, err := g.runner.Run(ctx, g.cmd("rev-list", "--count", rng).Unchecked())
	if err != nil {
		return 0, false, err
	}
	if !res.OK() {
		return 0, false, nil
	}
	n, err := strconv.Atoi(res.Output())
	if err != nil {
		logger := logging.GetLogger("git")
		logger.Debug().Str("output", res.Output()).Msg("unexpected rev-list output")
		return 0, false, nil
	}
	return n, true, nil
}

// Pull fetches and integrates the upstream, streaming git's output.
func (g *Repo) Pull(ctx context.Context, rebase bool) error {
	args := []string{"pull"}
	if rebase {
		args = append(args, "--rebase")
	}
	_, err := g.runner.Run(ctx, g.cmd(args...).Streaming())
	return err
}

// AddAll stages every change including deletions
func (g *Repo) AddAll(ctx context.Context) error {
	_, err := g.output(ctx, "add", "-A")
	return err
}

// DiffStat summarises staged changes
func (g *Repo) DiffStat(ctx context.Context) (string, error) {
	return g.output(ctx, "diff", "--cached", "--stat")
}

// Commit records the staged changes
func (g *Repo) Commit(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		return errors.New(errors.ErrInvalidInput, "commit message cannot be empty")
	}
	_, err := g.output(ctx, "commit", "-m", message)
	return err
}

// Push pushes the current branch to its upstream
func (g *Repo) Push(ctx context.Context) error {
	_, err := g.runner.Run(ctx, g.cmd("push").Streaming())
	return err
}

// PushBranch pushes branch to remote and sets it as upstream.
func (g *Repo) PushBranch(ctx context.Context, remote, branch string, force bool) error {
	args := []string{"push", "-u", remote, branch}
	if force {
		args = append(args, "--force")
	}
	_, err := g.output(ctx, args...)
	return err
}

// RemoteURL returns the URL of a remote and whether it exists.
func (g *Repo) RemoteURL(ctx context.Context, name string) (string, bool, error) {
	res, err := g.runner.Run(ctx, g.cmd("remote", "get-url", name).Unchecked())
	if err != nil {
		return "", false, err
	}
	if !res.OK() {
		return "", false, nil
	}
	return res.Output(), true, nil
}

// SetRemote points name at url, adding the remote when it does not exist.
func (g *Repo) SetRemote(ctx context.Context, name, url string) error {
	current, exists, err := g.RemoteURL(ctx, name)
	if err != nil {
		return err
	}
	switch {
	case !exists:
		_, err = g.output(ctx, "remote", "add", name, url)
	case current != url:
		_, err = g.output(ctx, "remote", "set-url", name, url)
	}
	return err
}
