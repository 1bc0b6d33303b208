package collect

import (
	_ "embed"
	"strings"
)

const (
	MsgShort          = "Copy changed home files back into the repository"
	MsgDryRunNotice   = "[warning]DRY RUN[/warning] [muted]nothing was changed[/muted]"
	MsgCollected      = "collected"
	MsgCollectedFiles = "collected %d file(s)"
	MsgWouldCollect   = "would be collected"
	MsgErrCollect     = "collect failed: %w"
	MsgLabelCollected = "collected"
	MsgLabelSkipped   = "skipped"
	MsgLabelErrored   = "errored"
)

var (
	//go:embed collect-long.txt
	msgLongRaw string
	MsgLong    = strings.TrimSpace(msgLongRaw)
)
