package validate

const (
	MsgShort   = "Check the repository's configuration files"
	MsgLong    = "Validate parses files.yaml, publish.yaml, packages.yaml, vars.yaml and dotfiles.toml and reports every problem it finds. Only files.yaml is required. The command fails when any error is reported; warnings alone do not fail it."
	MsgValid   = "%s"
	MsgAbsent  = "%s (not present)"
	MsgErrors  = "errors"
	MsgWarning = "warnings"
)
