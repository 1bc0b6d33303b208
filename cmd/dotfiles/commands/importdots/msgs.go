package importdots

const (
	MsgShort        = "Find common dotfiles that are not tracked yet"
	MsgLong         = "Import looks for well-known dotfiles in your home directory (the import.candidates setting) that are not tracked yet and lists them with their size. With --all every candidate is added as a symlink entry, as if by 'dotfiles add'."
	MsgFlagAll      = "Add every candidate"
	MsgNoCandidates = "No untracked dotfiles found."
	MsgFound        = "%d untracked dotfile(s):"
	MsgHintAll      = "Run 'dotfiles import --all' to track them all, or 'dotfiles add <path>' for one."
	MsgWouldAdd     = "[warning]DRY RUN[/warning] [muted]would add %d file(s)[/muted]"
	MsgAdded        = "Tracking %s"
	MsgFailed       = "%s: %s"
	MsgKindDir      = "dir"
	MsgKindFile     = "file"
	MsgErrImport    = "import failed: %w"
)
