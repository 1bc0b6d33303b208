package remote

const (
	MsgShort         = "Copy the repository to or from another machine"
	MsgLong          = "Remote mirrors the repository over ssh and rsync. Deploy replaces the remote copy with the local one, deleting remote files that no longer exist locally, and with --bootstrap runs 'dotfiles apply' on the host. Pull copies the remote repository over the local one and never deletes local files."
	MsgDeployShort   = "Mirror the repository to a host"
	MsgPullShort     = "Copy the repository from a host"
	MsgFlagPath      = "Repository location on the host (defaults to remote.path)"
	MsgFlagBootstrap = "Run 'dotfiles apply' on the host after copying"
	MsgDeployed      = "Deployed to %s:%s"
	MsgBootstrapped  = "Applied dotfiles on %s"
	MsgPulled        = "Pulled %s:%s"
	MsgDryRun        = "Dry run: would %s %s:%s"
)
