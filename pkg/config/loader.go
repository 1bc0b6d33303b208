package config

import (
	"os"
	"strings"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for settings overrides. A double underscore
// separates nesting levels: DOTFILES_REMOTE__CONNECT_TIMEOUT=10.
const EnvPrefix = "DOTFILES_"

// Load resolves settings for the repository described by p.
func Load(p *paths.Paths) (*Config, error) {
	return LoadFile(p.SettingsPath())
}

// LoadFile resolves settings using settingsPath as the repository layer.
// A missing file is not an error.
func LoadFile(settingsPath string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Repository settings
	if _, err := os.Stat(settingsPath); err == nil {
		if err := k.Load(file.Provider(settingsPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", settingsPath).
				WithDetail("path", settingsPath)
		}
		logger.Debug().Str("path", settingsPath).Msg("loaded repository settings")
	}

	// 3. Environment
	envK := koanf.New(".")
	err := envK.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}
	if err := k.Load(confmap.Provider(knownKeys(k, envK.All()), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to merge env vars")
	}

	// 4. Unmarshal
	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the embedded defaults without consulting files or environment.
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic("embedded defaults are invalid: " + err.Error())
	}
	cfg, err := unmarshal(k)
	if err != nil {
		panic("embedded defaults are invalid: " + err.Error())
	}
	return cfg
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// envKey maps DOTFILES_BACKUP__DIR to backup.dir
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// knownKeys drops env values that do not name an existing setting, so
// unrelated variables sharing the prefix (DOTFILES_ROOT, DOTFILES_PROFILE)
// never leak into the settings tree.
func knownKeys(k *koanf.Koanf, all map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(all))
	for key, val := range all {
		if k.Exists(key) {
			out[key] = val
		}
	}
	return out
}

// Validate checks settings that would otherwise fail later in confusing ways.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Backup.Dir) == "" {
		problems = append(problems, "backup.dir must not be empty")
	}
	if strings.TrimSpace(c.Backup.TimestampFormat) == "" {
		problems = append(problems, "backup.timestamp_format must not be empty")
	}
	if c.Remote.ConnectTimeout <= 0 {
		problems = append(problems, "remote.connect_timeout must be positive")
	}
	if strings.TrimSpace(c.Packages.Tool) == "" {
		problems = append(problems, "packages.tool must not be empty")
	}
	if strings.TrimSpace(c.Publish.Output) == "" {
		problems = append(problems, "publish.output must not be empty")
	}
	if len(problems) == 0 {
		return nil
	}
	return errors.New(errors.ErrConfigInvalid, "invalid settings: "+strings.Join(problems, "; ")).
		WithDetail("problems", problems)
}
