package doctor

const (
	MsgShort    = "Check that this machine can run dotfiles"
	MsgLong     = "Doctor checks the repository layout, the manifest and the external tools the commands rely on (git, rsync, ssh, git-crypt, gh, the package tool). Checks marked optional only matter for the commands that use them and never fail the run."
	MsgCheck    = "%s"
	MsgDetail   = "%s: %s"
	MsgOptional = "%s (optional): %s"
	MsgFiles    = "Files: %s"
	MsgHealthy  = "Everything looks good"
	MsgProblems = "%d required checks failed"
)
