// Package packages wraps the external package-manager tool. The tool reads
// the repository's config/packages.yaml, which is passed to it through the
// PACKAGE_CONFIG environment variable.
package packages

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/runner"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
	"gopkg.in/yaml.v3"
)

// EnvConfig tells the package tool where its manifest lives
const EnvConfig = "PACKAGE_CONFIG"

// Manager runs the package tool against one packages.yaml.
type Manager struct {
	runner        runner.Runner
	tool          string
	configPath    string
	installSource string
}

// New creates a Manager. tool is the executable name and installSource is
// what "uv tool install" receives when installing it.
func New(r runner.Runner, tool, configPath, installSource string) *Manager {
	return &Manager{runner: r, tool: tool, configPath: configPath, installSource: installSource}
}

// Tool returns the package tool's executable name
func (m *Manager) Tool() string {
	return m.tool
}

// Available reports whether the package tool is on PATH
func (m *Manager) Available() bool {
	_, err := m.runner.LookPath(m.tool)
	return err == nil
}

func (m *Manager) run(ctx context.Context, args ...string) error {
	logger := logging.GetLogger("packages")
	if _, err := m.runner.LookPath(m.tool); err != nil {
		return errors.ToolMissing(m.tool, "run 'dotfiles pkg install-tool' or: uv tool install "+m.installSource)
	}
	logger.Info().Str("tool", m.tool).Strs("args", args).Msg("running package tool")
	cmd := runner.Command(m.tool, args...).
		WithEnv(EnvConfig + "=" + m.configPath).
		Streaming()
	_, err := m.runner.Run(ctx, cmd)
	return err
}

// Init installs every package in the manifest, optionally limited to the
// given package types.
func (m *Manager) Init(ctx context.Context, kinds []string) error {
	args := []string{"init"}
	if len(kinds) > 0 {
		args = append(args, "--types", strings.Join(kinds, ","))
	}
	return m.run(ctx, args...)
}

// Install installs a package and records it in the manifest
func (m *Manager) Install(ctx context.Context, kind, name string) error {
	if err := requireArgs(kind, name); err != nil {
		return err
	}
	return m.run(ctx, "install", kind, name)
}

// Remove uninstalls a package and drops it from the manifest
func (m *Manager) Remove(ctx context.Context, kind, name string) error {
	if err := requireArgs(kind, name); err != nil {
		return err
	}
	return m.run(ctx, "remove", kind, name)
}

// Update upgrades every tracked package
func (m *Manager) Update(ctx context.Context) error {
	return m.run(ctx, "update")
}

// List prints installed packages
func (m *Manager) List(ctx context.Context) error {
	return m.run(ctx, "list")
}

func requireArgs(kind, name string) error {
	if strings.TrimSpace(kind) == "" || strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrInvalidInput, "package type and name are required")
	}
	return nil
}

// InstallTool installs the package tool with uv. It reports true when the
// tool was already present.
func (m *Manager) InstallTool(ctx context.Context) (bool, error) {
	logger := logging.GetLogger("packages")
	if m.Available() {
		return true, nil
	}
	if _, err := m.runner.LookPath("uv"); err != nil {
		return false, errors.ToolMissing("uv", "install uv first: curl -LsSf https://astral.sh/uv/install.sh | sh")
	}

	logger.Info().Str("source", m.installSource).Msg("installing package tool")
	if _, err := m.runner.Run(ctx, runner.Command("uv", "tool", "install", m.installSource).Streaming()); err != nil {
		return false, errors.Wrapf(err, errors.GetErrorCode(err), "failed to install %s", m.tool)
	}
	if !m.Available() {
		return false, errors.Newf(errors.ErrToolFailed, "%s is still not on PATH after installation", m.tool).
			WithDetail("hint", "make sure uv's tool directory is on PATH (uv tool update-shell)")
	}
	return false, nil
}

// Validate checks that packages.yaml parses and is a mapping. A missing
// file is fine.
func Validate(fs types.FS, path string) []types.Issue {
	doc := filepath.Base(path)
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return []types.Issue{{Document: doc, Severity: types.SeverityError, Message: err.Error()}}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return []types.Issue{{Document: doc, Severity: types.SeverityError, Message: "invalid YAML: " + err.Error()}}
	}
	if len(root.Content) == 0 {
		return []types.Issue{{Document: doc, Severity: types.SeverityWarning, Message: "empty"}}
	}
	if top := root.Content[0]; top.Kind != yaml.MappingNode {
		return []types.Issue{{Document: doc, Severity: types.SeverityError, Line: top.Line, Message: "document must be a mapping of package types"}}
	}
	return nil
}
