// Package sync binds pull and push to the CLI.
package sync

import (
	"fmt"
	"strings"

	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/apply"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/gitsync"
	"github.com/spf13/cobra"
)

// NewPullCommand creates the pull command
func NewPullCommand(rt *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "pull",
		Short:   MsgPullShort,
		Long:    MsgPullLong,
		Args:    cobra.NoArgs,
		GroupID: cli.GroupSync,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			p := rt.Printer(cmd)
			result, err := gitsync.Pull(cli.Context(cmd), gitsync.PullOptions{Env: env, Force: rt.Force})
			if result != nil && result.Apply != nil {
				p.Success(MsgPulled)
				apply.Render(p, result.Apply)
			}
			if err != nil {
				return fmt.Errorf(MsgErrPull, err)
			}
			return cli.FailIf(result.Apply.Errored)
		},
	}
}

// NewPushCommand creates the push command
func NewPushCommand(rt *cli.Runtime) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:     "push [message]",
		Short:   MsgPushShort,
		Long:    MsgPushLong,
		Args:    cobra.ArbitraryArgs,
		GroupID: cli.GroupSync,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			if len(args) > 0 {
				message = strings.Join(args, " ")
			}
			result, err := gitsync.Push(cli.Context(cmd), gitsync.PushOptions{Env: env, Message: message})
			if err != nil {
				return fmt.Errorf(MsgErrPush, err)
			}
			p := rt.Printer(cmd)
			if result.Clean {
				p.Muted(MsgNothing)
				return nil
			}
			if result.DiffStat != "" {
				p.Println(result.DiffStat)
			}
			p.Success(MsgPushed, result.Message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", MsgFlagMsg)
	return cmd
}
