package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

// Environment variable names
const (
	// EnvDotfiles is the primary environment variable for the repository location
	EnvDotfiles = "DOTFILES"

	// EnvDotfilesRoot is accepted as an alias of EnvDotfiles
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Repository layout. These names are shared with the documents users edit
// by hand and are not configurable.
const (
	DefaultDotfilesDir = "dotfiles"

	ConfigDirName   = "config"
	ManifestFile    = "files.yaml"
	PackagesFile    = "packages.yaml"
	PublishFile     = "publish.yaml"
	SettingsFile    = "dotfiles.toml"
	ScriptsDirName  = "scripts"
	PlatformDirName = "platform"
	SecretsDirName  = "secrets"
	BackupsDirName  = "backups"

	// InternalDirName holds repository-local tool state (hooks, template vars)
	InternalDirName = ".dotfiles"
	HooksDirName    = "hooks"
	VarsFile        = "vars.yaml"

	StateDirName = "dotfiles"
)

// Paths is the resolved location of every file and directory the tool works with.
type Paths struct {
	dotfilesRoot string
	home         string
	stateDir     string
	platform     types.Platform
	usedDefault  bool
}

// New creates a Paths instance for the given dotfiles root.
// If dotfilesRoot is empty, it is taken from $DOTFILES (or $DOTFILES_ROOT),
// falling back to ~/dotfiles.
func New(dotfilesRoot string) (*Paths, error) {
	home, err := homeDir()
	if err != nil {
		return nil, err
	}
	return NewWithHome(dotfilesRoot, home, types.CurrentPlatform())
}

// NewWithHome is New with an explicit home directory and platform.
func NewWithHome(dotfilesRoot, home string, platform types.Platform) (*Paths, error) {
	if home == "" {
		return nil, errors.New(errors.ErrInvalidInput, "home directory cannot be empty")
	}

	absHome, err := filepath.Abs(home)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for home %s", home)
	}

	p := &Paths{
		home:     absHome,
		platform: platform,
		stateDir: filepath.Join(xdg.StateHome, StateDirName),
	}

	if dotfilesRoot == "" {
		dotfilesRoot = os.Getenv(EnvDotfiles)
	}
	if dotfilesRoot == "" {
		dotfilesRoot = os.Getenv(EnvDotfilesRoot)
	}
	if dotfilesRoot == "" {
		dotfilesRoot = filepath.Join(absHome, DefaultDotfilesDir)
		p.usedDefault = true
	}

	absRoot, err := filepath.Abs(p.ExpandHome(dotfilesRoot))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for dotfiles root")
	}
	p.dotfilesRoot = absRoot

	return p, nil
}

func homeDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "failed to determine home directory")
	}
	return home, nil
}

// DotfilesRoot returns the root directory of the dotfiles repository
func (p *Paths) DotfilesRoot() string {
	return p.dotfilesRoot
}

// UsedDefault reports whether the root came from the ~/dotfiles default
func (p *Paths) UsedDefault() bool {
	return p.usedDefault
}

// HomeDir returns the home directory destinations are relative to
func (p *Paths) HomeDir() string {
	return p.home
}

// Platform returns the platform entries are filtered against
func (p *Paths) Platform() types.Platform {
	return p.platform
}

// ConfigDir returns the repository's config/ directory
func (p *Paths) ConfigDir() string {
	return filepath.Join(p.dotfilesRoot, ConfigDirName)
}

// ManifestPath returns the path of the tracked-files manifest
func (p *Paths) ManifestPath() string {
	return filepath.Join(p.ConfigDir(), ManifestFile)
}

// PackagesPath returns the path of the package manifest consumed by the package tool
func (p *Paths) PackagesPath() string {
	return filepath.Join(p.ConfigDir(), PackagesFile)
}

// PublishPath returns the path of the publish settings document
func (p *Paths) PublishPath() string {
	return filepath.Join(p.ConfigDir(), PublishFile)
}

// SettingsPath returns the path of the repository's TOML settings
func (p *Paths) SettingsPath() string {
	return filepath.Join(p.ConfigDir(), SettingsFile)
}

// ScriptsDir returns the repository's scripts/ directory
func (p *Paths) ScriptsDir() string {
	return filepath.Join(p.dotfilesRoot, ScriptsDirName)
}

// PlatformDir returns the repository's platform/ directory
func (p *Paths) PlatformDir() string {
	return filepath.Join(p.dotfilesRoot, PlatformDirName)
}

// InternalDir returns the repository-local .dotfiles directory
func (p *Paths) InternalDir() string {
	return filepath.Join(p.dotfilesRoot, InternalDirName)
}

// HooksDir returns the directory holding pre/post hook scripts
func (p *Paths) HooksDir() string {
	return filepath.Join(p.InternalDir(), HooksDirName)
}

// VarsPath returns the template variables document
func (p *Paths) VarsPath() string {
	return filepath.Join(p.InternalDir(), VarsFile)
}

// BackupsDir returns the default directory for backups
func (p *Paths) BackupsDir() string {
	return filepath.Join(p.dotfilesRoot, BackupsDirName)
}

// StateDir returns the XDG state directory for the tool
func (p *Paths) StateDir() string {
	return p.stateDir
}

// RepoPath converts a repository-relative path into an absolute path
func (p *Paths) RepoPath(rel string) string {
	return filepath.Join(p.dotfilesRoot, filepath.FromSlash(rel))
}

// HomePath converts a home-relative path into an absolute path
func (p *Paths) HomePath(rel string) string {
	return filepath.Join(p.home, filepath.FromSlash(types.NormalizeRelPath(rel)))
}

// RelToHome returns the slash-separated path of abs relative to the home
// directory, failing when abs is not inside it.
func (p *Paths) RelToHome(abs string) (string, error) {
	rel, ok := relInside(p.home, abs)
	if !ok {
		return "", errors.Newf(errors.ErrOutsideHome, "path must be under home directory: %s", abs).
			WithDetail("path", abs)
	}
	return rel, nil
}

// RelToRepo returns the slash-separated path of abs relative to the repository root
func (p *Paths) RelToRepo(abs string) (string, bool) {
	return relInside(p.dotfilesRoot, abs)
}

// IsInRepo reports whether abs lies within the repository
func (p *Paths) IsInRepo(abs string) bool {
	_, ok := relInside(p.dotfilesRoot, abs)
	return ok
}

// ExpandHome expands a leading ~ to the home directory
func (p *Paths) ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) == 1 {
		return p.home
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(p.home, path[2:])
	}
	// ~user is left untouched
	return path
}

// ResolveUserPath turns user input (absolute, ~-prefixed or relative to the
// working directory) into a clean absolute path.
func (p *Paths) ResolveUserPath(input string) (string, error) {
	expanded := p.ExpandHome(strings.TrimSpace(input))
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve %s", input)
	}
	return abs, nil
}

func relInside(base, target string) (string, bool) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", false
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
