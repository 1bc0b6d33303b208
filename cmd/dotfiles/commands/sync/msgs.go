package sync

const (
	MsgPullShort = "Pull repository changes and apply them"
	MsgPullLong  = "Pull runs 'git pull --rebase' in the repository and then applies the manifest, exactly like 'dotfiles apply'. Pass --force to replace conflicting files during the apply. The pre-pull and post-pull hooks run around it."
	MsgPushShort = "Commit every repository change and push it"
	MsgPushLong  = "Push stages all changes in the repository, shows a summary, commits them with the given message and pushes to the upstream branch. A clean repository is left alone. The pre-push and post-push hooks run around it."
	MsgPulled    = "Pulled latest changes"
	MsgNothing   = "Nothing to push, the repository is clean."
	MsgPushed    = "Pushed: %s"
	MsgFlagMsg   = "Commit message (also accepted as arguments)"
	MsgErrPull   = "pull failed: %w"
	MsgErrPush   = "push failed: %w"
)
