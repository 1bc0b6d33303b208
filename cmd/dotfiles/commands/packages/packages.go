// Package packages binds the package-manager wrapper to the CLI.
package packages

import (
	"fmt"

	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/spf13/cobra"
)

// NewCommand creates the pkg command and its subcommands
func NewCommand(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pkg",
		Short:   MsgShort,
		Long:    MsgLong,
		GroupID: cli.GroupManage,
	}

	var kinds []string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: MsgInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			if err := env.Packages().Init(cli.Context(cmd), kinds); err != nil {
				return fmt.Errorf(MsgErrPkg, err)
			}
			rt.Printer(cmd).Success(MsgInitDone, env.Paths.PackagesPath())
			return nil
		},
	}
	initCmd.Flags().StringSliceVar(&kinds, "types", nil, MsgFlagTypes)

	cmd.AddCommand(
		initCmd,
		&cobra.Command{
			Use:   "install <type> <name>",
			Short: MsgInstallShort,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				env, err := rt.Env()
				if err != nil {
					return err
				}
				if err := env.Packages().Install(cli.Context(cmd), args[0], args[1]); err != nil {
					return fmt.Errorf(MsgErrPkg, err)
				}
				rt.Printer(cmd).Success(MsgInstalled, args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <type> <name>",
			Short: MsgRemoveShort,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				env, err := rt.Env()
				if err != nil {
					return err
				}
				if err := env.Packages().Remove(cli.Context(cmd), args[0], args[1]); err != nil {
					return fmt.Errorf(MsgErrPkg, err)
				}
				rt.Printer(cmd).Success(MsgRemoved, args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "update",
			Short: MsgUpdateShort,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				env, err := rt.Env()
				if err != nil {
					return err
				}
				if err := env.Packages().Update(cli.Context(cmd)); err != nil {
					return fmt.Errorf(MsgErrPkg, err)
				}
				rt.Printer(cmd).Success(MsgUpdated)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: MsgListShort,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				env, err := rt.Env()
				if err != nil {
					return err
				}
				if err := env.Packages().List(cli.Context(cmd)); err != nil {
					return fmt.Errorf(MsgErrPkg, err)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "install-tool",
			Short: MsgInstallToolShort,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				env, err := rt.Env()
				if err != nil {
					return err
				}
				m := env.Packages()
				already, err := m.InstallTool(cli.Context(cmd))
				if err != nil {
					return fmt.Errorf(MsgErrPkg, err)
				}
				if already {
					rt.Printer(cmd).Muted(MsgToolPresent, m.Tool())
				} else {
					rt.Printer(cmd).Success(MsgToolInstalled, m.Tool())
				}
				return nil
			},
		},
	)
	return cmd
}
