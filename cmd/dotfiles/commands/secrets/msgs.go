package secrets

const (
	MsgShort            = "Manage encrypted files with git-crypt"
	MsgLong             = "Secrets wraps git-crypt. Files matched by a git-crypt rule in .gitattributes are stored encrypted in the repository and decrypted in your working tree once it is unlocked with the key. Keep a copy of the exported key somewhere safe: without it the files cannot be recovered."
	MsgInitShort        = "Set up git-crypt and export the key"
	MsgUnlockShort      = "Decrypt the working tree"
	MsgLockShort        = "Re-encrypt the working tree"
	MsgStatusShort      = "Show git-crypt's status report"
	MsgExportShort      = "Export the repository key"
	MsgAddPatternShort  = "Encrypt files matching a pattern"
	MsgListShort        = "List encrypted files"
	MsgFlagKey          = "Key file (default from secrets.key_file)"
	MsgInitialized      = "git-crypt initialized"
	MsgKeyExported      = "Key exported to %s"
	MsgKeepKeySafe      = "Store this key somewhere safe, it is the only way to decrypt your secrets."
	MsgUnlocked         = "Secrets unlocked"
	MsgLocked           = "Secrets locked"
	MsgPatternAdded     = "Files matching %s will be encrypted"
	MsgPatternPresent   = "%s is already encrypted"
	MsgNoEncryptedFiles = "No encrypted files."
	MsgErrSecrets       = "secrets: %w"
)
