// Package doctor checks that the repository and the tools it relies on are
// in working order.
package doctor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/status"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/runner"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

// Check is one health probe. Failed advisory checks are reported but do
// not fail the run.
type Check struct {
	Name     string
	OK       bool
	Advisory bool
	Detail   string
}

// Result holds every check plus the tracked-file summary.
type Result struct {
	Checks []Check

	// Entries and FileIssues are zero when the manifest could not be read
	Entries    int
	FileIssues int
}

// OK reports whether every required check passed
func (r *Result) OK() bool {
	for _, c := range r.Checks {
		if !c.OK && !c.Advisory {
			return false
		}
	}
	return true
}

// Failed lists the checks that did not pass
func (r *Result) Failed() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.OK {
			out = append(out, c)
		}
	}
	return out
}

// DoctorOptions holds options for the doctor operation
type DoctorOptions struct {
	Env *commands.Env
}

type tool struct {
	name     string
	required bool
}

// Doctor runs every health check. It changes nothing.
func Doctor(ctx context.Context, opts DoctorOptions) (*Result, error) {
	env := opts.Env
	logger := logging.GetLogger("commands.doctor")
	done := logging.LogOperationStart(logger, "doctor")
	defer done()

	p := env.Paths
	result := &Result{}
	add := func(c Check) {
		result.Checks = append(result.Checks, c)
		logger.Debug().Str("check", c.Name).Bool("ok", c.OK).Msg("health check")
	}

	add(Check{Name: "repository", OK: isDir(env, p.DotfilesRoot()), Detail: p.DotfilesRoot()})
	add(Check{Name: "git repository", OK: isDir(env, filepath.Join(p.DotfilesRoot(), ".git")), Detail: p.DotfilesRoot()})

	manifestCheck := Check{Name: "files.yaml", Detail: p.ManifestPath()}
	if env.Exists(p.ManifestPath()) {
		if _, err := env.LoadManifest(); err != nil {
			manifestCheck.Detail = err.Error()
		} else {
			manifestCheck.OK = true
		}
	} else {
		manifestCheck.Detail = "not found (created by the first add)"
		manifestCheck.Advisory = true
	}
	add(manifestCheck)

	tools := []tool{
		{"git", true},
		{"git-crypt", false},
		{"rsync", false},
		{"ssh", false},
		{"gh", false},
		{"fish", false},
		{env.Config.Packages.Tool, false},
	}
	if p.Platform() == types.PlatformDarwin {
		tools = append(tools, tool{"brew", false}, tool{"mackup", false})
	}
	for _, t := range tools {
		add(toolCheck(env.Runner, t))
	}

	keyFile := env.KeyPath()
	add(Check{Name: "git-crypt key", OK: env.Exists(keyFile), Advisory: true, Detail: keyFile})

	add(ghAuthCheck(ctx, env.Runner))

	if manifestCheck.OK {
		st, err := status.Status(ctx, status.StatusOptions{Env: env})
		if err != nil {
			return nil, err
		}
		result.Entries = st.Symlinks + st.Copies
		result.FileIssues = len(st.Issues)
	}

	logger.Info().Bool("ok", result.OK()).Int("failed", len(result.Failed())).Msg("health check finished")
	return result, nil
}

func toolCheck(r runner.Runner, t tool) Check {
	c := Check{Name: "tool: " + t.name, Advisory: !t.required}
	path, err := r.LookPath(t.name)
	if err != nil {
		c.Detail = errors.Hint(err)
		return c
	}
	c.OK = true
	c.Detail = path
	return c
}

func ghAuthCheck(ctx context.Context, r runner.Runner) Check {
	c := Check{Name: "GitHub auth", Advisory: true, Detail: "gh auth login"}
	if _, err := r.LookPath("gh"); err != nil {
		return c
	}
	res, err := r.Run(ctx, runner.Command("gh", "auth", "status").Unchecked())
	if err == nil && res.OK() {
		c.OK = true
		c.Detail = ""
	}
	return c
}

func isDir(env *commands.Env, path string) bool {
	info, err := env.FS.Stat(path)
	return err == nil && info.IsDir()
}

// Summary describes the tracked-file part of the result in one line.
func (r *Result) Summary() string {
	switch {
	case r.Entries == 0:
		return "no files in manifest"
	case r.FileIssues == 0:
		return fmt.Sprintf("all %d files ok", r.Entries)
	default:
		return fmt.Sprintf("%d of %d files need attention", r.FileIssues, r.Entries)
	}
}
