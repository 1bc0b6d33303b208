// Package platform binds the platform helper to the CLI.
package platform

import (
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/platform"
	"github.com/dotfiles-cli/dotfiles/pkg/style"
	"github.com/spf13/cobra"
)

// NewCommand creates the platform command
func NewCommand(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "platform",
		Short:   MsgShort,
		Long:    MsgLong,
		GroupID: cli.GroupManage,
	}

	steps := func(name string, run func(*platform.Helper, *cobra.Command) ([]platform.Step, error)) *cobra.Command {
		short := MsgSetupShort
		if name == "update" {
			short = MsgUpdateShort
		}
		return &cobra.Command{
			Use:   name,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				env, err := rt.Env()
				if err != nil {
					return err
				}
				p := rt.Printer(cmd)
				if rt.DryRun {
					p.Info(MsgDryRun, name)
					return nil
				}
				done, err := run(env.Platform(), cmd)
				printSteps(p, done)
				return err
			},
		}
	}

	cmd.AddCommand(
		steps("setup", func(h *platform.Helper, cmd *cobra.Command) ([]platform.Step, error) {
			return h.Setup(cli.Context(cmd))
		}),
		steps("update", func(h *platform.Helper, cmd *cobra.Command) ([]platform.Step, error) {
			return h.Update(cli.Context(cmd))
		}),
		&cobra.Command{
			Use:   "brew-dump",
			Short: MsgBrewDumpShort,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				env, err := rt.Env()
				if err != nil {
					return err
				}
				file, err := env.Platform().BrewDump(cli.Context(cmd))
				if err != nil {
					return err
				}
				rt.Printer(cmd).Success(MsgBrewDumped, file)
				return nil
			},
		},
		&cobra.Command{
			Use:       MsgMackupUse,
			Short:     MsgMackupShort,
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{"backup", "restore"},
			RunE: func(cmd *cobra.Command, args []string) error {
				var backup bool
				switch args[0] {
				case "backup":
					backup = true
				case "restore":
				default:
					return errors.Newf(errors.ErrInvalidInput, MsgErrMackupArg, args[0])
				}
				env, err := rt.Env()
				if err != nil {
					return err
				}
				if err := env.Platform().Mackup(cli.Context(cmd), backup); err != nil {
					return err
				}
				rt.Printer(cmd).Success(MsgMackupDone, args[0])
				return nil
			},
		},
	)
	return cmd
}

func printSteps(p *style.Printer, steps []platform.Step) {
	for _, s := range steps {
		switch {
		case s.Skipped:
			p.Muted(MsgStepSkipped, s.Name, s.Detail)
		case s.Detail != "":
			p.Success(MsgStepDone+" (%s)", s.Name, s.Detail)
		default:
			p.Success(MsgStepDone, s.Name)
		}
	}
}
