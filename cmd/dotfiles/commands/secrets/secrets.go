package secrets

import (
	"fmt"

	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/spf13/cobra"
)

// NewCommand creates the secrets command and its subcommands
func NewCommand(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "secrets",
		Short:   MsgShort,
		Long:    MsgLong,
		GroupID: cli.GroupManage,
	}

	var key string
	unlock := &cobra.Command{
		Use:   "unlock",
		Short: MsgUnlockShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			if err := env.Secrets().Unlock(cli.Context(cmd), key); err != nil {
				return fmt.Errorf(MsgErrSecrets, err)
			}
			rt.Printer(cmd).Success(MsgUnlocked)
			return nil
		},
	}
	unlock.Flags().StringVar(&key, "key", "", MsgFlagKey)

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: MsgInitShort,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				env, err := rt.Env()
				if err != nil {
					return err
				}
				out, err := env.Secrets().Init(cli.Context(cmd))
				if err != nil {
					return fmt.Errorf(MsgErrSecrets, err)
				}
				p := rt.Printer(cmd)
				p.Success(MsgInitialized)
				p.Info(MsgKeyExported, out)
				p.Muted(MsgKeepKeySafe)
				return nil
			},
		},
		unlock,
		&cobra.Command{
			Use:   "lock",
			Short: MsgLockShort,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				env, err := rt.Env()
				if err != nil {
					return err
				}
				if err := env.Secrets().Lock(cli.Context(cmd)); err != nil {
					return fmt.Errorf(MsgErrSecrets, err)
				}
				rt.Printer(cmd).Success(MsgLocked)
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: MsgStatusShort,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				env, err := rt.Env()
				if err != nil {
					return err
				}
				out, err := env.Secrets().Status(cli.Context(cmd))
				if err != nil {
					return fmt.Errorf(MsgErrSecrets, err)
				}
				rt.Printer(cmd).Println(out)
				return nil
			},
		},
		&cobra.Command{
			Use:   "export-key [path]",
			Short: MsgExportShort,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				env, err := rt.Env()
				if err != nil {
					return err
				}
				target := ""
				if len(args) == 1 {
					target = env.Paths.ExpandHome(args[0])
				}
				out, err := env.Secrets().ExportKey(cli.Context(cmd), target)
				if err != nil {
					return fmt.Errorf(MsgErrSecrets, err)
				}
				p := rt.Printer(cmd)
				p.Success(MsgKeyExported, out)
				p.Muted(MsgKeepKeySafe)
				return nil
			},
		},
		&cobra.Command{
			Use:   "add-pattern <pattern>",
			Short: MsgAddPatternShort,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				env, err := rt.Env()
				if err != nil {
					return err
				}
				added, err := env.Secrets().AddPattern(args[0])
				if err != nil {
					return fmt.Errorf(MsgErrSecrets, err)
				}
				p := rt.Printer(cmd)
				if added {
					p.Success(MsgPatternAdded, args[0])
				} else {
					p.Muted(MsgPatternPresent, args[0])
				}
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
				files, err := env.Secrets().List(cli.Context(cmd))
				if err != nil {
					return fmt.Errorf(MsgErrSecrets, err)
				}
				p := rt.Printer(cmd)
				if len(files) == 0 {
					p.Muted(MsgNoEncryptedFiles)
					return nil
				}
				for _, f := range files {
					p.Println(f)
				}
				return nil
			},
		},
	)
	return cmd
}
