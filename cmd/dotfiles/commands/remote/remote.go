// Package remote binds the rsync transfer client to the CLI.
package remote

import (
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/spf13/cobra"
)

// NewCommand creates the remote command
func NewCommand(rt *cli.Runtime) *cobra.Command {
	var path string
	var bootstrap bool

	cmd := &cobra.Command{
		Use:     "remote",
		Short:   MsgShort,
		Long:    MsgLong,
		GroupID: cli.GroupSync,
	}
	cmd.PersistentFlags().StringVar(&path, "path", "", MsgFlagPath)

	deploy := &cobra.Command{
		Use:   "deploy <host>",
		Short: MsgDeployShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			host := args[0]
			client := env.Remote(path)
			p := rt.Printer(cmd)
			if rt.DryRun {
				p.Info(MsgDryRun, "deploy to", host, client.Path())
				return nil
			}
			if err := client.Deploy(cli.Context(cmd), host, bootstrap); err != nil {
				return err
			}
			p.Success(MsgDeployed, host, client.Path())
			if bootstrap {
				p.Success(MsgBootstrapped, host)
			}
			return nil
		},
	}
	deploy.Flags().BoolVar(&bootstrap, "bootstrap", false, MsgFlagBootstrap)

	pull := &cobra.Command{
		Use:   "pull <host>",
		Short: MsgPullShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			host := args[0]
			client := env.Remote(path)
			p := rt.Printer(cmd)
			if rt.DryRun {
				p.Info(MsgDryRun, "pull from", host, client.Path())
				return nil
			}
			if err := client.Pull(cli.Context(cmd), host); err != nil {
				return err
			}
			p.Success(MsgPulled, host, client.Path())
			return nil
		},
	}

	cmd.AddCommand(deploy, pull)
	return cmd
}
