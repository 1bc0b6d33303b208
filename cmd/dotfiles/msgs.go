package dotfiles

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "A manifest-driven dotfiles manager"
	MsgCompletionShort = "Generate shell completion script"
	MsgNoCommand       = "no command specified"

	// Group titles
	MsgGroupSync   = "SYNC:"
	MsgGroupManage = "MANAGE:"
	MsgGroupMisc   = "MISC:"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagForce   = "Replace conflicting files instead of skipping them"
	MsgFlagRoot    = "Repository root (overrides DOTFILES)"
	MsgFlagNoColor = "Disable colored output"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
