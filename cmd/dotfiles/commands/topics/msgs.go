package topics

const (
	MsgShort = "List help topics or show one"
	MsgLong  = "Topics are longer guides built into the binary. 'dotfiles topics' lists them and 'dotfiles topics <name>' shows one; 'dotfiles help <name>' works too."
)
