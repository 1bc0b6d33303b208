package add

import (
	_ "embed"
	"strings"
)

const (
	MsgShort        = "Start tracking a file from your home directory"
	MsgFlagCopy     = "Track as a copy instead of a symlink"
	MsgFlagSecret   = "Keep the file under secrets/ (encrypted when git-crypt is set up)"
	MsgFlagPlatform = "Only apply on this platform (darwin, linux, windows)"
	MsgAdded        = "Tracking %s as %s"
	MsgUpdated      = "Updated entry for %s, now %s"
	MsgLinked       = "Replaced %s with a link to %s"
	MsgErrAdd       = "add failed: %w"
)

var (
	//go:embed add-long.txt
	msgLongRaw string
	MsgLong    = strings.TrimSpace(msgLongRaw)

	//go:embed add-example.txt
	msgExampleRaw string
	MsgExample    = strings.TrimSpace(msgExampleRaw)
)
