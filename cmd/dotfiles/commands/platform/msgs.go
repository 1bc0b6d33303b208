package platform

const (
	MsgShort         = "Platform setup: Homebrew, Brewfile and Mackup"
	MsgLong          = "Platform runs the machine-level helpers for the current platform. On macOS setup installs Homebrew when missing, installs platform/mac/Brewfile and restores Mackup settings. Other platforms report the steps as skipped."
	MsgSetupShort    = "Prepare this machine"
	MsgUpdateShort   = "Upgrade platform packages"
	MsgBrewDumpShort = "Write installed Homebrew packages to the Brewfile"
	MsgMackupShort   = "Back up or restore application settings with Mackup"
	MsgMackupUse     = "mackup backup|restore"
	MsgStepDone      = "%s: done"
	MsgStepSkipped   = "%s: skipped (%s)"
	MsgBrewDumped    = "Wrote %s"
	MsgMackupDone    = "Mackup %s finished"
	MsgDryRun        = "Dry run: would run platform %s"
	MsgErrMackupArg  = "unknown mackup action %q (want backup or restore)"
)
