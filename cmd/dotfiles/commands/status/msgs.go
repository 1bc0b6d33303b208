package status

const (
	MsgShort         = "Summarise tracked entries and repository state"
	MsgLong          = "Status shows where the repository is, how many entries it tracks, the git branch with its distance from upstream, and every entry that needs attention. Nothing is modified."
	MsgRepo          = "Repository: %s (%s)"
	MsgEntries       = "Entries:    %d symlinks, %d copies"
	MsgBranch        = "Branch:     %s"
	MsgNoUpstream    = "no upstream"
	MsgAheadBehind   = "%d ahead, %d behind"
	MsgUpToDate      = "up to date"
	MsgDirty         = "uncommitted changes"
	MsgNotGit        = "Branch:     not a git repository"
	MsgInSync        = "Everything is in sync."
	MsgNeedAttention = "%d entries need attention:"
	MsgSourceMissing = "source missing"
	MsgHint          = "Run 'dotfiles apply' to fix missing entries or 'dotfiles diff --full' for details."
	MsgErrStatus     = "status failed: %w"
)
