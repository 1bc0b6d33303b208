package publish

import (
	_ "embed"
	"strings"
)

const (
	MsgShort         = "Write a sanitized public copy of the repository"
	MsgGistShort     = "Publish the bootstrap script as a GitHub gist"
	MsgGistLong      = "Gist renders scripts/bootstrap.sh with your repository URL and uploads it to a GitHub gist with the gh CLI. Pass --id to update an existing gist; files it holds under other names are removed. The curl one-liner that runs the script is printed at the end."
	MsgFlagOutput    = "Output directory (default from publish.output)"
	MsgFlagExclude   = "Extra rsync exclude pattern (repeatable)"
	MsgFlagPush      = "Commit and push the copy to publish.public_repo"
	MsgFlagMessage   = "Commit message for the public repository"
	MsgFlagGistID    = "Update this gist instead of creating one"
	MsgFlagRepo      = "Repository URL written into the script (default: origin)"
	MsgFlagFilename  = "File name inside the gist"
	MsgWritten       = "Sanitized copy written to %s"
	MsgCleaned       = "Removed %s"
	MsgNoRemote      = "No public repository configured; set publish.public_repo to push."
	MsgNoChanges     = "Public repository is already up to date."
	MsgPushed        = "Pushed to %s (%s)"
	MsgGistCreated   = "Created gist %s"
	MsgGistUpdated   = "Updated gist %s"
	MsgOneLiner      = "Bootstrap a new machine with:"
	MsgErrPublish    = "publish failed: %w"
	MsgErrGist       = "gist publish failed: %w"
	MsgReviewPublish = "Review the copy before sharing it."
)

var (
	//go:embed publish-long.txt
	msgLongRaw string
	MsgLong    = strings.TrimSpace(msgLongRaw)
)
