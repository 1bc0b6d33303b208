package config

const (
	MsgShort         = "Show or create the repository settings file"
	MsgLong          = "Settings live in config/dotfiles.toml. Built-in defaults apply first, then that file, then DOTFILES_<SECTION>__<KEY> environment variables."
	MsgGenerateShort = "Print the default settings, or write them with --write"
	MsgFlagWrite     = "Write config/dotfiles.toml instead of printing"
	MsgWritten       = "Wrote %s"
	MsgDryRun        = "Dry run: would write %s"
)
