// pkg/testutil/environment.go
// DEPENDENCIES: paths, config, filesystem
// PURPOSE: Orchestrate isolated home + repository environments for tests

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dotfiles-cli/dotfiles/pkg/config"
	"github.com/dotfiles-cli/dotfiles/pkg/filesystem"
	"github.com/dotfiles-cli/dotfiles/pkg/paths"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

// TestEnvironment provides a complete test environment with all dependencies
type TestEnvironment struct {
	// Core paths
	DotfilesRoot string
	HomeDir      string

	// Core dependencies
	FS     types.FS
	Paths  *paths.Paths
	Config *config.Config
	Runner *FakeRunner

	t *testing.T
}

// NewTestEnvironment creates a repository and home directory under a fresh
// temp dir and points HOME and DOTFILES at them for the duration of the test.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	tempDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}

	env := &TestEnvironment{
		DotfilesRoot: filepath.Join(tempDir, "dotfiles"),
		HomeDir:      filepath.Join(tempDir, "home"),
		FS:           filesystem.NewOS(),
		Config:       config.Default(),
		Runner:       NewFakeRunner(),
		t:            t,
	}

	for _, dir := range []string{env.DotfilesRoot, env.HomeDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv(paths.EnvDotfiles, env.DotfilesRoot)
	t.Setenv(paths.EnvDotfilesRoot, "")
	t.Setenv("DOTFILES_LOG_FILE", filepath.Join(tempDir, "dotfiles.log"))
	t.Setenv("DOTFILES_PROFILE", "")
	t.Setenv("NO_COLOR", "1")

	env.SetPlatform(types.CurrentPlatform())
	return env
}

// SetPlatform rebuilds Paths as if running on p.
func (env *TestEnvironment) SetPlatform(p types.Platform) {
	env.t.Helper()
	pathsInstance, err := paths.NewWithHome(env.DotfilesRoot, env.HomeDir, p)
	if err != nil {
		env.t.Fatalf("Failed to create paths: %v", err)
	}
	env.Paths = pathsInstance
}

// RepoPath returns the absolute path of a repository-relative path
func (env *TestEnvironment) RepoPath(rel string) string {
	return env.Paths.RepoPath(rel)
}

// HomePath returns the absolute path of a home-relative path
func (env *TestEnvironment) HomePath(rel string) string {
	return env.Paths.HomePath(rel)
}

// WriteRepoFile creates a file in the repository and returns its absolute path
func (env *TestEnvironment) WriteRepoFile(rel, content string) string {
	env.t.Helper()
	return CreateFile(env.t, env.DotfilesRoot, rel, content)
}

// WriteHomeFile creates a file in the home directory and returns its absolute path
func (env *TestEnvironment) WriteHomeFile(rel, content string) string {
	env.t.Helper()
	return CreateFile(env.t, env.HomeDir, rel, content)
}

// SymlinkHome creates a link at the home-relative path pointing at target
func (env *TestEnvironment) SymlinkHome(rel, target string) string {
	env.t.Helper()
	link := env.HomePath(rel)
	CreateSymlink(env.t, target, link)
	return link
}

// ReadHome returns the content of a home-relative file
func (env *TestEnvironment) ReadHome(rel string) string {
	env.t.Helper()
	return ReadFile(env.t, env.HomePath(rel))
}

// ReadRepo returns the content of a repository-relative file
func (env *TestEnvironment) ReadRepo(rel string) string {
	env.t.Helper()
	return ReadFile(env.t, env.RepoPath(rel))
}

// WriteManifest replaces config/files.yaml with content
func (env *TestEnvironment) WriteManifest(content string) {
	env.t.Helper()
	CreateFile(env.t, env.DotfilesRoot, filepath.Join(paths.ConfigDirName, paths.ManifestFile), content)
}

// WithRepoTree creates a file tree inside the repository
func (env *TestEnvironment) WithRepoTree(tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.DotfilesRoot, tree)
}

// WithHomeTree creates a file tree inside the home directory
func (env *TestEnvironment) WithHomeTree(tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.HomeDir, tree)
}

// FileTree represents a directory structure for testing
type FileTree map[string]interface{}

// createFileTree recursively creates a file tree
func createFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			// It's a file
			if err := fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				t.Fatalf("Failed to create directory for %s: %v", fullPath, err)
			}
			if err := fs.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			// It's a directory
			if err := fs.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			createFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
