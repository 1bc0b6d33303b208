package config

import (
	"path"
	"strings"
)

// Config is the fully resolved set of tool settings.
type Config struct {
	Backup    Backup    `koanf:"backup" toml:"backup"`
	Sensitive Sensitive `koanf:"sensitive" toml:"sensitive"`
	Remote    Remote    `koanf:"remote" toml:"remote"`
	Publish   Publish   `koanf:"publish" toml:"publish"`
	Secrets   Secrets   `koanf:"secrets" toml:"secrets"`
	Packages  Packages  `koanf:"packages" toml:"packages"`
	Hooks     Hooks     `koanf:"hooks" toml:"hooks"`
	Templates Templates `koanf:"templates" toml:"templates"`
	Import    Import    `koanf:"import" toml:"import"`
}

// Backup controls where forced overwrites and snapshots are kept
type Backup struct {
	Dir             string `koanf:"dir" toml:"dir" comment:"Backup directory, relative to the repository root unless absolute"`
	TimestampFormat string `koanf:"timestamp_format" toml:"timestamp_format" comment:"Go time layout used to name pre-apply backup runs"`
}

// Sensitive lists substrings that mark a destination as sensitive
type Sensitive struct {
	Patterns []string `koanf:"patterns" toml:"patterns" comment:"Case-insensitive substrings; matching copies get owner-only permissions"`
}

type Remote struct {
	Path           string   `koanf:"path" toml:"path" comment:"Repository location on remote hosts"`
	ConnectTimeout int      `koanf:"connect_timeout" toml:"connect_timeout" comment:"SSH connect timeout in seconds"`
	Excludes       []string `koanf:"excludes" toml:"excludes" comment:"rsync exclude patterns for remote deploys"`
}

type Publish struct {
	Output     string   `koanf:"output" toml:"output" comment:"Sanitized copy destination, relative to the repository root"`
	Exclude    []string `koanf:"exclude" toml:"exclude" comment:"rsync exclude patterns applied when publishing"`
	Cleanup    []string `koanf:"cleanup" toml:"cleanup" comment:"Base-name globs deleted from the output after syncing"`
	PublicRepo string   `koanf:"public_repo" toml:"public_repo" comment:"Git remote the sanitized copy is force-pushed to"`
	Branches   []string `koanf:"branches" toml:"branches" comment:"Branches tried in order when pushing the public copy"`
}

type Secrets struct {
	KeyFile string `koanf:"key_file" toml:"key_file" comment:"Exported git-crypt key, relative to the home directory unless absolute"`
}

type Packages struct {
	Tool          string `koanf:"tool" toml:"tool" comment:"Package manager executable"`
	InstallSource string `koanf:"install_source" toml:"install_source" comment:"Source passed to 'uv tool install' by pkg install-tool"`
}

type Hooks struct {
	Enabled bool `koanf:"enabled" toml:"enabled" comment:"Run .dotfiles/hooks pre-/post- scripts"`
}

type Templates struct {
	Profile string `koanf:"profile" toml:"profile" comment:"Profile from vars.yaml; DOTFILES_PROFILE takes precedence"`
}

type Import struct {
	Candidates []string `koanf:"candidates" toml:"candidates" comment:"Home-relative paths offered by 'import'"`
}

// IsSensitive reports whether a home-relative destination matches any
// sensitive pattern.
func (c *Config) IsSensitive(dest string) bool {
	return MatchesSensitive(c.Sensitive.Patterns, dest)
}

// MatchesSensitive is a case-insensitive substring match of dest against patterns.
func MatchesSensitive(patterns []string, dest string) bool {
	lower := strings.ToLower(dest)
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" && strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// IsPublishCleanup reports whether a base name matches a publish cleanup glob.
func (c *Config) IsPublishCleanup(name string) bool {
	for _, pattern := range c.Publish.Cleanup {
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
