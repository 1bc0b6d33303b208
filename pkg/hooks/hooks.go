// Package hooks discovers and runs the user's pre- and post-operation
// scripts kept in the repository's .dotfiles/hooks directory.
//
// A hook is named "<phase>-<operation>" with an optional extension that
// selects the interpreter: none or .sh run with bash, .fish with fish and
// .py with python3. The first existing candidate in that order wins.
package hooks

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/runner"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

// Phase is when a hook runs relative to its operation.
type Phase string

const (
	PhasePre  Phase = "pre"
	PhasePost Phase = "post"
)

// ParsePhase accepts "pre" and "post"
func ParsePhase(s string) (Phase, error) {
	switch Phase(strings.ToLower(strings.TrimSpace(s))) {
	case PhasePre:
		return PhasePre, nil
	case PhasePost:
		return PhasePost, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown hook phase %q (expected pre or post)", s)
}

// extensions are tried in order when looking up a hook.
var extensions = []string{"", ".sh", ".fish", ".py"}

// Interpreter returns the program that runs a hook file.
func Interpreter(path string) string {
	switch filepath.Ext(path) {
	case ".fish":
		return "fish"
	case ".py":
		return "python3"
	default:
		return "bash"
	}
}

// Hook is one script found in the hooks directory.
type Hook struct {
	Name string
	Path string
}

// Hooks runs scripts from one directory.
type Hooks struct {
	fs      types.FS
	runner  runner.Runner
	dir     string
	enabled bool
}

// New creates a hook runner. A disabled runner finds nothing and runs nothing.
func New(fs types.FS, r runner.Runner, dir string, enabled bool) *Hooks {
	return &Hooks{fs: fs, runner: r, dir: dir, enabled: enabled}
}

// Dir returns the hooks directory
func (h *Hooks) Dir() string {
	return h.dir
}

// Name builds the hook name for an operation and phase, e.g. "pre-apply".
func Name(op string, phase Phase) string {
	return fmt.Sprintf("%s-%s", phase, op)
}

// Find returns the script for op and phase, if one exists.
func (h *Hooks) Find(op string, phase Phase) (string, bool) {
	if h == nil || !h.enabled {
		return "", false
	}
	base := filepath.Join(h.dir, Name(op, phase))
	for _, ext := range extensions {
		info, err := h.fs.Stat(base + ext)
		if err == nil && info.Mode().IsRegular() {
			return base + ext, true
		}
	}
	return "", false
}

// Run executes the hook for op and phase. It reports whether a hook ran;
// a missing hook is not an error.
func (h *Hooks) Run(ctx context.Context, op string, phase Phase, env ...string) (bool, error) {
	path, ok := h.Find(op, phase)
	if !ok {
		return false, nil
	}

	logger := logging.GetLogger("hooks")
	logger.Info().Str("hook", Name(op, phase)).Str("path", path).Msg("running hook")

	cmd := runner.Command(Interpreter(path), path).InDir(filepath.Dir(h.dir)).WithEnv(env...).Streaming()
	if _, err := h.runner.Run(ctx, cmd); err != nil {
		return true, errors.Wrapf(err, errors.GetErrorCode(err), "hook %s failed", Name(op, phase)).
			WithDetail("hook", path)
	}
	return true, nil
}

// List returns every visible file in the hooks directory, sorted by name.
func (h *Hooks) List() ([]Hook, error) {
	entries, err := h.fs.ReadDir(h.dir)
	if err != nil {
		if _, statErr := h.fs.Stat(h.dir); statErr != nil {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read hooks directory %s", h.dir)
	}

	var hooks []Hook
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		hooks = append(hooks, Hook{Name: e.Name(), Path: filepath.Join(h.dir, e.Name())})
	}
	sort.Slice(hooks, func(i, j int) bool { return hooks[i].Name < hooks[j].Name })
	return hooks, nil
}

const template = `#!/usr/bin/env bash
# %[1]s hook
# Runs %[2]s dotfiles %[3]s

set -e

echo "Running %[1]s hook..."

# Add your commands here
`

// Create writes an executable bash skeleton for op and phase and returns its path.
func (h *Hooks) Create(op string, phase Phase) (string, error) {
	op = strings.TrimSpace(op)
	if op == "" || strings.ContainsAny(op, `/\`) {
		return "", errors.Newf(errors.ErrInvalidInput, "invalid hook operation %q", op)
	}

	path := filepath.Join(h.dir, Name(op, phase)+".sh")
	if _, err := h.fs.Lstat(path); err == nil {
		return "", errors.Newf(errors.ErrAlreadyExists, "hook already exists: %s", path).WithDetail("path", path)
	}

	if err := h.fs.MkdirAll(h.dir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "cannot create hooks directory %s", h.dir)
	}

	when := "before"
	if phase == PhasePost {
		when = "after"
	}
	content := fmt.Sprintf(template, Name(op, phase), when, op)
	if err := h.fs.WriteFile(path, []byte(content), 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "cannot write hook %s", path)
	}
	// WriteFile honours umask; hooks must be executable
	if err := h.fs.Chmod(path, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "cannot make hook executable %s", path)
	}
	return path, nil
}
