// Package platform runs the operating-system specific setup: Homebrew and
// Mackup on macOS. Linux has nothing to set up.
package platform

import (
	"context"
	"path/filepath"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/runner"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

const homebrewInstall = `/bin/bash -c "$(curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh)"`

// Step records one part of a setup or update run.
type Step struct {
	Name    string
	Skipped bool
	Detail  string
}

// Helper runs platform tooling for the repository's platform/ directory.
type Helper struct {
	runner   runner.Runner
	fs       types.FS
	dir      string
	platform types.Platform
}

// New creates a Helper. dir is the repository's platform/ directory.
func New(r runner.Runner, fs types.FS, dir string, p types.Platform) *Helper {
	return &Helper{runner: r, fs: fs, dir: dir, platform: p}
}

// Brewfile is the Homebrew bundle kept in the repository
func (h *Helper) Brewfile() string {
	return filepath.Join(h.dir, "mac", "Brewfile")
}

// MackupConfig is the Mackup configuration kept in the repository
func (h *Helper) MackupConfig() string {
	return filepath.Join(h.dir, "mac", "mackup", ".mackup.cfg")
}

func (h *Helper) has(name string) bool {
	_, err := h.runner.LookPath(name)
	return err == nil
}

func (h *Helper) exists(path string) bool {
	_, err := h.fs.Stat(path)
	return err == nil
}

func (h *Helper) stream(ctx context.Context, name string, args ...string) error {
	_, err := h.runner.Run(ctx, runner.Command(name, args...).Streaming())
	return err
}

// Setup prepares the machine: on macOS it installs Homebrew when missing,
// installs the Brewfile and restores Mackup settings.
func (h *Helper) Setup(ctx context.Context) ([]Step, error) {
	logger := logging.GetLogger("platform")
	if h.platform != types.PlatformDarwin {
		return []Step{{Name: "setup", Skipped: true, Detail: "nothing to set up on " + string(h.platform)}}, nil
	}

	var steps []Step
	if h.has("brew") {
		steps = append(steps, Step{Name: "homebrew", Skipped: true, Detail: "already installed"})
	} else {
		logger.Info().Msg("installing Homebrew")
		if err := h.stream(ctx, "sh", "-c", homebrewInstall); err != nil {
			return steps, errors.Wrap(err, errors.GetErrorCode(err), "Homebrew installation failed")
		}
		steps = append(steps, Step{Name: "homebrew", Detail: "installed"})
	}

	if brewfile := h.Brewfile(); h.exists(brewfile) {
		if err := h.stream(ctx, "brew", "bundle", "--file="+brewfile); err != nil {
			return steps, errors.Wrap(err, errors.GetErrorCode(err), "brew bundle failed")
		}
		steps = append(steps, Step{Name: "brewfile", Detail: brewfile})
	} else {
		steps = append(steps, Step{Name: "brewfile", Skipped: true, Detail: "no Brewfile"})
	}

	switch {
	case !h.exists(h.MackupConfig()):
		steps = append(steps, Step{Name: "mackup", Skipped: true, Detail: "no mackup configuration"})
	case !h.has("mackup"):
		steps = append(steps, Step{Name: "mackup", Skipped: true, Detail: "mackup not installed"})
	default:
		if err := h.Mackup(ctx, false); err != nil {
			return steps, err
		}
		steps = append(steps, Step{Name: "mackup", Detail: "settings restored"})
	}
	return steps, nil
}

// Update upgrades platform packages: brew update, upgrade and cleanup.
func (h *Helper) Update(ctx context.Context) ([]Step, error) {
	if h.platform != types.PlatformDarwin {
		return []Step{{Name: "update", Skipped: true, Detail: "no package manager configured for " + string(h.platform)}}, nil
	}
	if !h.has("brew") {
		return nil, errors.ToolMissing("brew", runner.InstallHint("brew"))
	}

	var steps []Step
	for _, sub := range []string{"update", "upgrade", "cleanup"} {
		if err := h.stream(ctx, "brew", sub); err != nil {
			return steps, errors.Wrapf(err, errors.GetErrorCode(err), "brew %s failed", sub)
		}
		steps = append(steps, Step{Name: "brew " + sub})
	}
	return steps, nil
}

// BrewDump regenerates the Brewfile from the installed packages.
func (h *Helper) BrewDump(ctx context.Context) (string, error) {
	if !h.has("brew") {
		return "", errors.ToolMissing("brew", runner.InstallHint("brew"))
	}
	brewfile := h.Brewfile()
	if err := h.fs.MkdirAll(filepath.Dir(brewfile), 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(brewfile))
	}
	if err := h.stream(ctx, "brew", "bundle", "dump", "--file="+brewfile, "--force"); err != nil {
		return "", errors.Wrap(err, errors.GetErrorCode(err), "brew bundle dump failed")
	}
	return brewfile, nil
}

// Mackup backs up (backup true) or restores application settings.
func (h *Helper) Mackup(ctx context.Context, backup bool) error {
	if !h.has("mackup") {
		return errors.ToolMissing("mackup", runner.InstallHint("mackup"))
	}
	action := "restore"
	if backup {
		action = "backup"
	}
	if err := h.stream(ctx, "mackup", action, "-f"); err != nil {
		return errors.Wrapf(err, errors.GetErrorCode(err), "mackup %s failed", action)
	}
	return nil
}
