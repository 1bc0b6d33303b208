package templates

const (
	MsgShort       = "Render {{VAR}} templates"
	MsgLong        = "Templates substitute {{NAME}} placeholders with built-in variables (HOME, USER, HOSTNAME, DOTFILES, PLATFORM, SHELL) and the variables in .dotfiles/vars.yaml. The active profile (DOTFILES_PROFILE or templates.profile) overlays its own block. Unknown placeholders are left as they are."
	MsgRenderShort = "Render a template file"
	MsgVarsShort   = "Show the resolved variables"
	MsgRendered    = "Rendered %s to %s"
	MsgDryRun      = "Dry run: would render %s to %s"
	MsgProfile     = "Profile: %s"
	MsgNoProfile   = "No profile active"
)
