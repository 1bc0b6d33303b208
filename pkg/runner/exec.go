package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
)

// installHints are shown when a required executable is missing.
var installHints = map[string]string{
	"git":        "install git from https://git-scm.com or your package manager",
	"git-crypt":  "install git-crypt (brew install git-crypt / apt install git-crypt)",
	"rsync":      "install rsync (brew install rsync / apt install rsync)",
	"ssh":        "install an OpenSSH client",
	"gh":         "install the GitHub CLI from https://cli.github.com and run 'gh auth login'",
	"brew":       "install Homebrew from https://brew.sh",
	"mackup":     "install mackup (brew install mackup)",
	"uv":         "install uv from https://docs.astral.sh/uv",
	"pkgmanager": "run 'dotfiles pkg install-tool'",
	"fish":       "install the fish shell",
	"python3":    "install Python 3",
	"bash":       "install bash",
}

// InstallHint returns the remediation shown when name is missing.
func InstallHint(name string) string {
	return installHints[name]
}

// Exec runs commands with os/exec.
type Exec struct {
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a runner that streams to the process's stdout and stderr.
func New() *Exec {
	return &Exec{Stdout: os.Stdout, Stderr: os.Stderr}
}

// LookPath finds name on PATH.
func (e *Exec) LookPath(name string) (string, error) {
	p, err := exec.LookPath(name)
	if err != nil {
		return "", errors.ToolMissing(name, InstallHint(name))
	}
	return p, nil
}

// Run executes cmd and waits for it to finish.
func (e *Exec) Run(ctx context.Context, cmd Cmd) (*Result, error) {
	logger := logging.GetLogger("runner")
	logging.LogCommand(cmd.Name, cmd.Args)

	if _, err := e.LookPath(cmd.Name); err != nil {
		return nil, err
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	if cmd.Stdin != nil {
		c.Stdin = cmd.Stdin
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	if cmd.Stream {
		c.Stdout = io.MultiWriter(&stdout, e.Stdout)
		c.Stderr = io.MultiWriter(&stderr, e.Stderr)
	}

	err := c.Run()
	result := &Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if err != nil {
		var exitErr *exec.ExitError
		if !stderrors.As(err, &exitErr) {
			return result, errors.Wrapf(err, errors.ErrToolFailed, "failed to run %s", cmd.Name).
				WithDetail("command", cmd.String())
		}
		result.ExitCode = exitErr.ExitCode()
	}

	logger.Debug().
		Str("command", cmd.String()).
		Str("dir", cmd.Dir).
		Int("exit", result.ExitCode).
		Msg("command finished")

	if result.ExitCode != 0 && !cmd.NoCheck {
		return result, Failed(cmd, result)
	}
	return result, nil
}

// Failed builds the error for a checked command that exited non-zero.
func Failed(cmd Cmd, result *Result) error {
	msg := strings.TrimSpace(result.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(result.Stdout)
	}
	if i := strings.LastIndex(msg, "\n"); i >= 0 {
		msg = strings.TrimSpace(msg[i+1:])
	}
	e := errors.Newf(errors.ErrToolFailed, "%s exited with status %d", cmd.Name, result.ExitCode).
		WithDetail("command", cmd.String()).
		WithDetail("exit_code", result.ExitCode)
	if msg != "" {
		e.Message += ": " + msg
		e.WithDetail("stderr", msg)
	}
	return e
}
