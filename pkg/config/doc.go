// Package config handles tool settings for dotfiles.
// Settings are layered from embedded defaults, the repository's
// config/dotfiles.toml and DOTFILES_ environment variables.
package config
