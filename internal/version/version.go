package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/dotfiles-cli/dotfiles/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/dotfiles-cli/dotfiles/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/dotfiles-cli/dotfiles/internal/version.Date={{.Date}}
)

// String is the one-line version shown by "dotfiles version"
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
