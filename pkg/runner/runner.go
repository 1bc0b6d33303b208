// Package runner is the single place external programs are executed.
//
// Every collaborator (git, git-crypt, rsync, ssh, gh, brew, the package
// tool, hook scripts) describes what it wants as a Cmd and hands it to a
// Runner. The exec-backed implementation logs each invocation, honours the
// context, captures or streams output, and turns failures into coded errors:
// ErrToolMissing when the executable is not on PATH, ErrToolFailed when it
// exits non-zero and the command asked to be checked.
package runner

import (
	"context"
	"io"
	"strings"
)

// Cmd describes one external program invocation.
type Cmd struct {
	// Name is the executable, looked up on PATH
	Name string
	Args []string

	// Dir is the working directory; empty means the current one
	Dir string

	// Env holds KEY=VALUE pairs added to the inherited environment
	Env []string

	// Stdin, when set, is fed to the process
	Stdin io.Reader

	// Stream sends output to the runner's writers as it is produced
	// instead of only capturing it
	Stream bool

	// NoCheck treats a non-zero exit as a normal result rather than an error
	NoCheck bool
}

// String renders the command line for logs and messages.
func (c Cmd) String() string {
	parts := append([]string{c.Name}, c.Args...)
	for i, p := range parts {
		if p == "" || strings.ContainsAny(p, " \t\"'") {
			parts[i] = "'" + strings.ReplaceAll(p, "'", `'\''`) + "'"
		}
	}
	return strings.Join(parts, " ")
}

// Result is what a finished process produced.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// OK reports a zero exit status
func (r *Result) OK() bool {
	return r != nil && r.ExitCode == 0
}

// Output returns trimmed stdout
func (r *Result) Output() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r.Stdout)
}

// Runner executes external commands.
type Runner interface {
	Run(ctx context.Context, cmd Cmd) (*Result, error)

	// LookPath reports where an executable lives, or ErrToolMissing
	LookPath(name string) (string, error)
}

// Command is a shorthand for building a checked, captured Cmd.
func Command(name string, args ...string) Cmd {
	return Cmd{Name: name, Args: args}
}

// InDir returns a copy of c running in dir
func (c Cmd) InDir(dir string) Cmd {
	c.Dir = dir
	return c
}

// WithEnv returns a copy of c with extra environment entries
func (c Cmd) WithEnv(env ...string) Cmd {
	c.Env = append(append([]string{}, c.Env...), env...)
	return c
}

// Streaming returns a copy of c whose output is shown live
func (c Cmd) Streaming() Cmd {
	c.Stream = true
	return c
}

// Unchecked returns a copy of c whose non-zero exit is not an error
func (c Cmd) Unchecked() Cmd {
	c.NoCheck = true
	return c
}
