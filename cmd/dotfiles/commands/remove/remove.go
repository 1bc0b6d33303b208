package remove

import (
	"fmt"

	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/remove"
	"github.com/spf13/cobra"
)

// NewCommand creates the remove command
func NewCommand(rt *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <dest>",
		Aliases: []string{"rm"},
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.ExactArgs(1),
		GroupID: cli.GroupSync,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			result, err := remove.Remove(remove.RemoveOptions{Env: env, Dest: args[0]})
			if err != nil {
				return fmt.Errorf(MsgErrRemove, err)
			}
			p := rt.Printer(cmd)
			p.Success(MsgRemoved, result.Entry.DisplayDest())
			if result.Unlinked {
				p.Info(MsgUnlinked, result.Entry.DisplayDest())
			}
			p.Muted(MsgKeptRepo, result.Entry.Source)
			return nil
		},
	}
}
