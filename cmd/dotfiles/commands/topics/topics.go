// Package topics exposes the built-in help topics as a command.
package topics

import (
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/pkg/topics"
	"github.com/spf13/cobra"
)

// NewCommand creates the topics command over m
func NewCommand(m *topics.Manager) *cobra.Command {
	return &cobra.Command{
		Use:       "topics [topic]",
		Short:     MsgShort,
		Long:      MsgLong,
		GroupID:   cli.GroupMisc,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: m.List(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				m.WriteIndex(cmd.OutOrStdout(), cmd.Root().Name())
				return nil
			}
			return m.Show(cmd.OutOrStdout(), args[0])
		},
	}
}
