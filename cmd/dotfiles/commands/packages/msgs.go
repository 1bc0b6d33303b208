package packages

const (
	MsgShort            = "Manage system packages listed in config/packages.yaml"
	MsgLong             = "Pkg drives the package tool (packages.tool, pkgmanager by default) against config/packages.yaml, which is passed to it in PACKAGE_CONFIG. Run 'dotfiles pkg install-tool' first if the tool is not installed."
	MsgInitShort        = "Create config/packages.yaml"
	MsgInstallShort     = "Add a package and install it"
	MsgRemoveShort      = "Remove a package"
	MsgUpdateShort      = "Install and upgrade every listed package"
	MsgListShort        = "List packages"
	MsgInstallToolShort = "Install the package tool with uv"
	MsgFlagTypes        = "Package types to include (comma separated)"
	MsgInitDone         = "Created %s"
	MsgInstalled        = "Installed %s package %s"
	MsgRemoved          = "Removed %s package %s"
	MsgUpdated          = "Packages updated"
	MsgToolPresent      = "%s is already installed"
	MsgToolInstalled    = "Installed %s"
	MsgErrPkg           = "pkg: %w"
)
