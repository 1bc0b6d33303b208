// Package hooks binds hook listing and scaffolding to the CLI.
package hooks

import (
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/pkg/hooks"
	"github.com/spf13/cobra"
)

// NewCommand creates the hooks command
func NewCommand(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hooks",
		Short:   MsgShort,
		Long:    MsgLong,
		GroupID: cli.GroupManage,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			h := env.Hooks()
			found, err := h.List()
			if err != nil {
				return err
			}
			p := rt.Printer(cmd)
			if !env.Config.Hooks.Enabled {
				p.Warning(MsgDisabled)
			}
			if len(found) == 0 {
				p.Muted(MsgNoHooks, h.Dir())
				return nil
			}
			rows := make([][]string, 0, len(found))
			for _, hook := range found {
				rows = append(rows, []string{hook.Name, hooks.Interpreter(hook.Path)})
			}
			p.Table([]string{"hook", "interpreter"}, rows)
			return nil
		},
	}

	var phase string
	create := &cobra.Command{
		Use:   "create <operation>",
		Short: MsgCreateShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := hooks.ParsePhase(phase)
			if err != nil {
				return err
			}
			env, err := rt.Env()
			if err != nil {
				return err
			}
			path, err := env.Hooks().Create(args[0], ph)
			if err != nil {
				return err
			}
			rt.Printer(cmd).Success(MsgCreated, path)
			return nil
		},
	}
	create.Flags().StringVar(&phase, "phase", string(hooks.PhasePre), MsgFlagPhase)

	cmd.AddCommand(list, create)
	return cmd
}
