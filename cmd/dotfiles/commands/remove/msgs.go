package remove

const (
	MsgShort     = "Stop tracking a destination"
	MsgLong      = "Remove deletes the entry for a destination from config/files.yaml. A symlink at the destination is removed; a copied file stays where it is. The repository copy is never deleted, so 'git rm' it yourself if you no longer want it."
	MsgExample   = "  dotfiles remove ~/.vimrc\n  dotfiles remove .config/fish"
	MsgRemoved   = "No longer tracking %s"
	MsgUnlinked  = "Removed the link at %s"
	MsgKeptRepo  = "The repository copy %s was kept"
	MsgErrRemove = "remove failed: %w"
)
