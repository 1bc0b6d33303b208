package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/runner"
)

// FakeRunner implements runner.Runner without executing anything. Commands
// are matched against scripted responses by command-line prefix; unmatched
// commands succeed with empty output.
type FakeRunner struct {
	mu        sync.Mutex
	calls     []runner.Cmd
	responses []fakeResponse
	missing   map[string]bool
}

type fakeResponse struct {
	prefix string
	result runner.Result
	err    error
	hook   func(runner.Cmd)
}

// NewFakeRunner creates a runner where every tool is present and succeeds
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{missing: make(map[string]bool)}
}

// On scripts the result for commands whose line starts with prefix,
// e.g. "git status --porcelain". Later scripts take precedence.
func (f *FakeRunner) On(prefix string, result runner.Result) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, fakeResponse{prefix: prefix, result: result})
	return f
}

// OnStdout scripts a successful command printing stdout
func (f *FakeRunner) OnStdout(prefix, stdout string) *FakeRunner {
	return f.On(prefix, runner.Result{Stdout: stdout})
}

// OnFail scripts a command exiting with code and printing stderr
func (f *FakeRunner) OnFail(prefix string, code int, stderr string) *FakeRunner {
	return f.On(prefix, runner.Result{ExitCode: code, Stderr: stderr})
}

// OnError scripts a command that cannot be started
func (f *FakeRunner) OnError(prefix string, err error) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, fakeResponse{prefix: prefix, err: err})
	return f
}

// OnRun calls fn whenever a matching command runs, for simulating side effects
func (f *FakeRunner) OnRun(prefix string, fn func(runner.Cmd)) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, fakeResponse{prefix: prefix, hook: fn})
	return f
}

// Missing marks tools as absent from PATH
func (f *FakeRunner) Missing(names ...string) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range names {
		f.missing[n] = true
	}
	return f
}

// LookPath reports the tool as /usr/bin/<name> unless marked missing
func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.missing[name] {
		return "", errors.ToolMissing(name, runner.InstallHint(name))
	}
	return "/usr/bin/" + name, nil
}

// Run records cmd and returns the scripted result
func (f *FakeRunner) Run(ctx context.Context, cmd runner.Cmd) (*runner.Result, error) {
	if _, err := f.LookPath(cmd.Name); err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	line := Line(cmd)
	var (
		result runner.Result
		err    error
		hooks  []func(runner.Cmd)
		found  bool
	)
	for i := len(f.responses) - 1; i >= 0; i-- {
		r := f.responses[i]
		if !strings.HasPrefix(line, r.prefix) {
			continue
		}
		if r.hook != nil {
			hooks = append(hooks, r.hook)
			continue
		}
		if !found {
			result, err, found = r.result, r.err, true
		}
	}
	f.mu.Unlock()

	for _, h := range hooks {
		h(cmd)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 && !cmd.NoCheck {
		return &result, runner.Failed(cmd, &result)
	}
	return &result, nil
}

// Calls returns every command run so far
func (f *FakeRunner) Calls() []runner.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]runner.Cmd, len(f.calls))
	copy(out, f.calls)
	return out
}

// Lines returns every command run so far as plain command lines
func (f *FakeRunner) Lines() []string {
	calls := f.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = Line(c)
	}
	return out
}

// Ran reports whether any command line started with prefix
func (f *FakeRunner) Ran(prefix string) bool {
	for _, l := range f.Lines() {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}

// Line joins a command's name and arguments with single spaces
func Line(cmd runner.Cmd) string {
	return strings.Join(append([]string{cmd.Name}, cmd.Args...), " ")
}
