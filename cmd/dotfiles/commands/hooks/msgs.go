package hooks

const (
	MsgShort       = "List and create operation hooks"
	MsgLong        = "Hooks are scripts in .dotfiles/hooks named <phase>-<operation>, for example pre-apply.sh or post-pull. They run before or after the matching operation with DOTFILES and DOTFILES_PLATFORM set. Files ending in .fish run under fish, .py under python3, everything else under bash. A failing pre hook aborts the operation."
	MsgListShort   = "List hook scripts"
	MsgCreateShort = "Create a hook skeleton"
	MsgFlagPhase   = "Hook phase: pre or post"
	MsgNoHooks     = "No hooks in %s"
	MsgCreated     = "Created %s"
	MsgDisabled    = "Hooks are disabled (hooks.enabled = false)"
)
