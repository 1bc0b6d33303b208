package backup

const (
	MsgShort        = "Snapshot and restore tracked files"
	MsgLong         = "Backup copies every tracked destination that exists in the home directory into backups/<name>, together with an index recording each file's mode, size and BLAKE3 digest. With --archive the snapshot is a single zstd-compressed tar file instead. Restore writes a snapshot back and verifies every file against the index."
	MsgCreateShort  = "Snapshot tracked destinations"
	MsgRestoreShort = "Restore a snapshot"
	MsgListShort    = "List snapshots"
	MsgFlagArchive  = "Write a compressed archive instead of a directory"
	MsgCreated      = "Created backup %s (%d files, %s)"
	MsgSkipped      = "Skipped %d destinations that do not exist"
	MsgRestored     = "Restored %d files from %s (%d verified)"
	MsgFailed       = "%s: %s"
	MsgNoBackups    = "No backups in %s"
	MsgDryRun       = "Dry run: would %s backup %s"
	MsgNoIndex      = "pre-apply"
)
