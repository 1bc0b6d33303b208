package add

import (
	"fmt"

	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/add"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
	"github.com/spf13/cobra"
)

// NewCommand creates the add command
func NewCommand(rt *cli.Runtime) *cobra.Command {
	var (
		copyKind bool
		secret   bool
		platform string
	)

	cmd := &cobra.Command{
		Use:     "add <path>",
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
			p, err := types.ParsePlatform(platform)
			if err != nil {
				return err
			}
			kind := types.KindSymlink
			if copyKind {
				kind = types.KindCopy
			}

			result, err := add.Add(add.AddOptions{
				Env:      env,
				Path:     args[0],
				Kind:     kind,
				Secret:   secret,
				Platform: p,
			})
			if err != nil {
				return fmt.Errorf(MsgErrAdd, err)
			}

			out := rt.Printer(cmd)
			entry := result.Entry
			if result.Replaced {
				out.Success(MsgUpdated, entry.DisplayDest(), entry.Kind)
			} else {
				out.Success(MsgAdded, entry.DisplayDest(), entry.Kind)
			}
			if result.Linked {
				out.Info(MsgLinked, entry.DisplayDest(), entry.Source)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyKind, "copy", false, MsgFlagCopy)
	cmd.Flags().BoolVar(&secret, "secret", false, MsgFlagSecret)
	cmd.Flags().StringVar(&platform, "platform", "", MsgFlagPlatform)
	return cmd
}
