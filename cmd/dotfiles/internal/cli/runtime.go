// Package cli holds what the dotfiles subcommands share: the global flags,
// the lazily built Env and a printer bound to the command's output.
package cli

import (
	"context"
	"os"

	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/style"
	"github.com/spf13/cobra"
)

// Group IDs used by the root command
const (
	GroupSync   = "sync"
	GroupManage = "manage"
	GroupMisc   = "misc"
)

// EnvFactory builds an Env for a repository root ("" for the default lookup)
type EnvFactory func(root string) (*commands.Env, error)

// Runtime is created once per root command. Flag fields are filled by cobra.
type Runtime struct {
	Verbosity int
	DryRun    bool
	Force     bool
	NoColor   bool
	Root      string

	newEnv EnvFactory
	env    *commands.Env
}

// NewRuntime creates a runtime that builds its Env with factory
func NewRuntime(factory EnvFactory) *Runtime {
	if factory == nil {
		factory = commands.NewEnv
	}
	return &Runtime{newEnv: factory}
}

// Env resolves the repository and settings on first use.
func (r *Runtime) Env() (*commands.Env, error) {
	if r.env != nil {
		return r.env, nil
	}
	env, err := r.newEnv(r.Root)
	if err != nil {
		return nil, err
	}
	r.env = env
	return env, nil
}

// Color reports whether output should be styled
func (r *Runtime) Color() bool {
	return !r.NoColor && style.ColorEnabled(os.Stdout)
}

// Printer writes to cmd's output
func (r *Runtime) Printer(cmd *cobra.Command) *style.Printer {
	return style.NewPrinter(cmd.OutOrStdout(), style.Width(os.Stdout))
}

// Context returns the command's context, never nil
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// ErrReported is returned when a command already printed its failures;
// main exits non-zero without printing anything else.
var ErrReported = errors.New(errors.ErrReported, "failures were reported")
