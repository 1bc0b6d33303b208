package genconfig

import (
	"path/filepath"

	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/config"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
)

// GenConfigOptions holds options for the config generate command
type GenConfigOptions struct {
	Env *commands.Env

	// Write saves the content to dotfiles.toml instead of only returning it
	Write bool

	// Force overwrites an existing settings file
	Force bool
}

// Result carries the generated settings and where they went.
type Result struct {
	Content string
	Path    string
	Written bool
}

// GenConfig renders the default settings with every value commented out
// and optionally writes them to the repository's settings file.
func GenConfig(opts GenConfigOptions) (*Result, error) {
	env := opts.Env
	logger := logging.GetLogger("commands.genconfig")

	content, err := config.GenerateConfigContent()
	if err != nil {
		return nil, err
	}
	result := &Result{Content: content, Path: env.Paths.SettingsPath()}
	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	if env.Exists(result.Path) && !opts.Force {
		return result, errors.Newf(errors.ErrAlreadyExists, "settings file already exists: %s", result.Path).
			WithDetail("hint", "use --force to overwrite it")
	}
	if err := env.FS.MkdirAll(filepath.Dir(result.Path), 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(result.Path))
	}
	if err := env.FS.WriteFile(result.Path, []byte(content), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", result.Path)
	}

	logger.Info().Str("path", result.Path).Msg("Written config file")
	result.Written = true
	return result, nil
}
