package diff

import (
	_ "embed"
	"strings"
)

const (
	MsgShort         = "Show tracked entries that differ from the repository"
	MsgFlagFull      = "Show file content differences"
	MsgAllInSync     = "All %d entries are in sync."
	MsgDrifted       = "%d of %d entries differ"
	MsgSourceMissing = "source missing"
	MsgGitHeader     = "Uncommitted repository changes:"
	MsgGitClean      = "No uncommitted repository changes."
	MsgErrDiff       = "diff failed: %w"
)

var (
	//go:embed diff-long.txt
	msgLongRaw string
	MsgLong    = strings.TrimSpace(msgLongRaw)

	//go:embed diff-example.txt
	msgExampleRaw string
	MsgExample    = strings.TrimSpace(msgExampleRaw)
)
