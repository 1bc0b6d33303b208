package files

const (
	MsgShort       = "Inspect the manifest"
	MsgListShort   = "List tracked entries"
	MsgListLong    = "List prints every entry in config/files.yaml that applies to this platform. Use --all to include entries for other platforms."
	MsgCheckShort  = "Check config/files.yaml for problems"
	MsgCheckLong   = "Check reports entries with missing fields, unknown types or platforms, duplicate destinations and sources that do not exist in the repository."
	MsgFlagAll     = "Include entries for other platforms"
	MsgEmpty       = "No entries. Track a file with 'dotfiles add <path>'."
	MsgCount       = "%d entries"
	MsgAllPlatform = "all"
	MsgCheckOK     = "%s looks good"
	MsgCheckFailed = "%d error(s), %d warning(s) in %s"
)
