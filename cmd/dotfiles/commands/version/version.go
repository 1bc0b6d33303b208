// Package version prints build information.
package version

import (
	"fmt"

	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/internal/version"
	"github.com/spf13/cobra"
)

const msgShort = "Print the version"

// NewCommand creates the version command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   msgShort,
		GroupID: cli.GroupMisc,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cmd.Root().Name(), version.String())
		},
	}
}
