// Package commands holds what every dotfiles operation shares: the resolved
// paths, settings, filesystem and command runner, bundled as an Env that the
// CLI layer builds once per invocation.
//
// Each operation is implemented in its own subdirectory:
//   - apply/      - push repository state into the home directory
//   - collect/    - pull changed home files back into the repository
//   - diff/       - compare tracked entries, optionally with content diffs
//   - status/     - entry summary plus git branch state
//   - add/        - start tracking a home file
//   - remove/     - stop tracking a destination
//   - importdots/ - discover common dotfiles not yet tracked
//   - publish/    - sanitized public copy and bootstrap gist
//   - validate/   - check every repository document
//   - doctor/     - report missing tools and repository problems
//   - gitsync/    - pull and push the repository
//   - snapshot/   - named backups of tracked destinations
package commands

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/dotfiles-cli/dotfiles/pkg/backup"
	"github.com/dotfiles-cli/dotfiles/pkg/config"
	"github.com/dotfiles-cli/dotfiles/pkg/filesystem"
	"github.com/dotfiles-cli/dotfiles/pkg/git"
	"github.com/dotfiles-cli/dotfiles/pkg/hooks"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/manifest"
	"github.com/dotfiles-cli/dotfiles/pkg/packages"
	"github.com/dotfiles-cli/dotfiles/pkg/paths"
	"github.com/dotfiles-cli/dotfiles/pkg/platform"
	"github.com/dotfiles-cli/dotfiles/pkg/reconcile"
	"github.com/dotfiles-cli/dotfiles/pkg/remote"
	"github.com/dotfiles-cli/dotfiles/pkg/runner"
	"github.com/dotfiles-cli/dotfiles/pkg/secrets"
	"github.com/dotfiles-cli/dotfiles/pkg/templates"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

// Env is the explicit context every operation runs against.
type Env struct {
	Paths  *paths.Paths
	Config *config.Config
	FS     types.FS
	Runner runner.Runner

	// Now is the clock used to name backups
	Now func() time.Time
}

// New assembles an Env from its parts.
func New(p *paths.Paths, cfg *config.Config, fs types.FS, r runner.Runner) *Env {
	return &Env{Paths: p, Config: cfg, FS: fs, Runner: r, Now: time.Now}
}

// NewEnv resolves the repository at root (empty for the default lookup),
// loads its settings and wires the OS filesystem and exec runner.
func NewEnv(root string) (*Env, error) {
	p, err := paths.New(root)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(p)
	if err != nil {
		return nil, err
	}
	logger := logging.GetLogger("commands")
	logger.Debug().
		Str("root", p.DotfilesRoot()).
		Str("home", p.HomeDir()).
		Str("platform", string(p.Platform())).
		Msg("environment ready")
	return New(p, cfg, filesystem.NewOS(), runner.New()), nil
}

// LoadManifest reads config/files.yaml.
func (e *Env) LoadManifest() (*manifest.Manifest, error) {
	return manifest.Load(e.FS, e.Paths.ManifestPath())
}

// Applicable returns the manifest entries for the current platform.
func (e *Env) Applicable(m *manifest.Manifest) []types.FileEntry {
	return m.ForPlatform(e.Paths.Platform())
}

// SourcePath is the absolute repository path of an entry
func (e *Env) SourcePath(entry types.FileEntry) string {
	return e.Paths.RepoPath(entry.Source)
}

// DestPath is the absolute home path of an entry
func (e *Env) DestPath(entry types.FileEntry) string {
	return e.Paths.HomePath(entry.Dest)
}

// DestKey turns user input naming a destination ("~/.vimrc", "/home/me/.vimrc"
// or ".vimrc") into a manifest key.
func (e *Env) DestKey(input string) (string, error) {
	expanded := e.Paths.ExpandHome(input)
	if filepath.IsAbs(expanded) {
		return e.Paths.RelToHome(filepath.Clean(expanded))
	}
	return types.NormalizeRelPath(input), nil
}

// Reconcilers returns the symlink and copy reconcilers for the home directory.
func (e *Env) Reconcilers() *reconcile.Set {
	return reconcile.NewSet(e.FS, e.Paths.HomeDir(), e.Config.Sensitive.Patterns)
}

// BackupRoot is where backups are kept. Relative settings are resolved
// against the repository root.
func (e *Env) BackupRoot() string {
	dir := e.Paths.ExpandHome(e.Config.Backup.Dir)
	if dir == "" {
		return e.Paths.BackupsDir()
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return e.Paths.RepoPath(dir)
}

// Backups returns the snapshot manager for the backup directory
func (e *Env) Backups() *backup.Manager {
	return backup.New(e.FS, e.BackupRoot(), e.Paths.HomeDir())
}

// Git returns the repository's version-control collaborator
func (e *Env) Git() *git.Repo {
	return git.New(e.Runner, e.Paths.DotfilesRoot())
}

// KeyPath is the git-crypt key location. Relative settings are resolved
// against the home directory.
func (e *Env) KeyPath() string {
	key := e.Paths.ExpandHome(e.Config.Secrets.KeyFile)
	if filepath.IsAbs(key) {
		return key
	}
	return e.Paths.HomePath(key)
}

// Secrets returns the git-crypt collaborator for the repository
func (e *Env) Secrets() *secrets.Crypt {
	return secrets.New(e.Runner, e.FS, e.Paths.DotfilesRoot(), e.KeyPath())
}

// Packages returns the package-manager wrapper bound to config/packages.yaml
func (e *Env) Packages() *packages.Manager {
	return packages.New(e.Runner, e.Config.Packages.Tool, e.Paths.PackagesPath(), e.Config.Packages.InstallSource)
}

// Platform returns the Homebrew/Mackup helper for the current platform
func (e *Env) Platform() *platform.Helper {
	return platform.New(e.Runner, e.FS, e.Paths.PlatformDir(), e.Paths.Platform())
}

// Remote returns the ssh/rsync client. An empty path uses the configured one.
func (e *Env) Remote(path string) *remote.Client {
	if path == "" {
		path = e.Config.Remote.Path
	}
	return remote.New(e.Runner, e.Paths.DotfilesRoot(), remote.Options{
		Path:           path,
		ConnectTimeout: e.Config.Remote.ConnectTimeout,
		Excludes:       e.Config.Remote.Excludes,
	})
}

// Vars resolves template variables for the active profile.
func (e *Env) Vars() (*templates.Vars, error) {
	return templates.Load(e.FS, e.Paths, templates.ActiveProfile(e.Config.Templates.Profile))
}

// Hooks returns the hook runner for the repository
func (e *Env) Hooks() *hooks.Hooks {
	return hooks.New(e.FS, e.Runner, e.Paths.HooksDir(), e.Config.Hooks.Enabled)
}

// RunHook runs the hook for op and phase with DOTFILES and DOTFILES_PLATFORM set.
func (e *Env) RunHook(ctx context.Context, op string, phase hooks.Phase) error {
	_, err := e.Hooks().Run(ctx, op, phase,
		paths.EnvDotfiles+"="+e.Paths.DotfilesRoot(),
		"DOTFILES_PLATFORM="+string(e.Paths.Platform()),
	)
	return err
}

// Exists reports whether anything, including a dangling link, is at path.
func (e *Env) Exists(path string) bool {
	_, err := e.FS.Lstat(path)
	return err == nil
}

// IsLink reports whether path is a symlink
func (e *Env) IsLink(path string) bool {
	info, err := e.FS.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}
