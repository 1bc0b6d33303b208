// pkg/config/config_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: temp settings files, env vars
// PURPOSE: Verify settings layering (defaults, repository file, environment)

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dotfiles-cli/dotfiles/pkg/config"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "backups", cfg.Backup.Dir)
	assert.Equal(t, "20060102_150405", cfg.Backup.TimestampFormat)
	assert.Equal(t, []string{"ssh", "secret", "key", "credential", "token", "password"}, cfg.Sensitive.Patterns)
	assert.Equal(t, 5, cfg.Remote.ConnectTimeout)
	assert.Contains(t, cfg.Remote.Excludes, "backups")
	assert.Contains(t, cfg.Publish.Exclude, "*.age")
	assert.Equal(t, []string{"main", "master"}, cfg.Publish.Branches)
	assert.True(t, cfg.Hooks.Enabled)
	assert.Contains(t, cfg.Import.Candidates, ".ssh/config")
}

func TestLoadFile_Layering(t *testing.T) {
	dir := t.TempDir()
	settings := filepath.Join(dir, "dotfiles.toml")
	require.NoError(t, os.WriteFile(settings, []byte(`
[backup]
dir = "/var/backups/dotfiles"

[remote]
connect_timeout = 12

[sensitive]
patterns = ["vault"]
`), 0644))

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := config.LoadFile(settings)
		require.NoError(t, err)

		assert.Equal(t, "/var/backups/dotfiles", cfg.Backup.Dir)
		assert.Equal(t, 12, cfg.Remote.ConnectTimeout)
		assert.Equal(t, []string{"vault"}, cfg.Sensitive.Patterns)
		// untouched keys keep their defaults
		assert.Equal(t, "20060102_150405", cfg.Backup.TimestampFormat)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("DOTFILES_REMOTE__CONNECT_TIMEOUT", "30")
		t.Setenv("DOTFILES_HOOKS__ENABLED", "false")
		t.Setenv("DOTFILES_SENSITIVE__PATTERNS", "vault,gpg")
		t.Setenv("DOTFILES_ROOT", "/ignored")

		cfg, err := config.LoadFile(settings)
		require.NoError(t, err)

		assert.Equal(t, 30, cfg.Remote.ConnectTimeout)
		assert.False(t, cfg.Hooks.Enabled)
		assert.Equal(t, []string{"vault", "gpg"}, cfg.Sensitive.Patterns)
	})
}

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	malformed := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(malformed, []byte("[backup\ndir = "), 0644))
	_, err := config.LoadFile(malformed)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("[remote]\nconnect_timeout = 0\n"), 0644))
	_, err = config.LoadFile(invalid)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}

func TestIsSensitive(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		dest string
		want bool
	}{
		{".ssh/config", true},
		{".config/gh/hosts_TOKEN.yml", true},
		{".aws/Credentials", true},
		{".local/share/keyrings", true},
		{".gitconfig", false},
		{".config/fish/config.fish", false},
	}
	for _, tt := range tests {
		t.Run(tt.dest, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.IsSensitive(tt.dest))
		})
	}
}

func TestIsPublishCleanup(t *testing.T) {
	cfg := config.Default()
	assert.True(t, cfg.IsPublishCleanup("secrets.fish"))
	assert.True(t, cfg.IsPublishCleanup("private_work.fish"))
	assert.True(t, cfg.IsPublishCleanup(".env"))
	assert.False(t, cfg.IsPublishCleanup("config.fish"))
}

func TestGenerateConfigContent(t *testing.T) {
	content, err := config.GenerateConfigContent()
	require.NoError(t, err)

	assert.Contains(t, content, "[backup]")
	assert.Contains(t, content, "# timestamp_format = ")
	assert.Contains(t, content, "20060102_150405")

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		assert.True(t, strings.HasPrefix(trimmed, "["), "uncommented value line: %q", line)
	}
}
