package apply

import (
	_ "embed"
	"strings"
)

const (
	MsgShort         = "Push repository state into your home directory"
	MsgDryRunNotice  = "[warning]DRY RUN[/warning] [muted]nothing was changed[/muted]"
	MsgNothingToDo   = "No entries apply to this platform."
	MsgBackedUp      = "Backed up %d file(s) to %s"
	MsgUnchanged     = "already in place"
	MsgConflict      = "conflict, use --force to replace"
	MsgUseForce      = "use --force to replace"
	MsgWillReplace   = "%s, will be replaced"
	MsgErrApply      = "apply failed: %w"
	MsgLabelApplied  = "applied"
	MsgLabelSkipped  = "skipped"
	MsgLabelErrored  = "errored"
	MsgSourceMissing = "source missing"
)

var (
	//go:embed apply-long.txt
	msgLongRaw string
	MsgLong    = strings.TrimSpace(msgLongRaw)

	//go:embed apply-example.txt
	msgExampleRaw string
	MsgExample    = strings.TrimSpace(msgExampleRaw)
)
