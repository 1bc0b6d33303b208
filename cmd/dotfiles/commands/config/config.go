// Package config binds settings generation to the CLI.
package config

import (
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/genconfig"
	"github.com/spf13/cobra"
)

// NewCommand creates the config command
func NewCommand(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgShort,
		Long:    MsgLong,
		GroupID: cli.GroupMisc,
	}

	var write bool
	generate := &cobra.Command{
		Use:   "generate",
		Short: MsgGenerateShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			p := rt.Printer(cmd)
			if write && rt.DryRun {
				p.Info(MsgDryRun, env.Paths.SettingsPath())
				return nil
			}
			result, err := genconfig.GenConfig(genconfig.GenConfigOptions{Env: env, Write: write, Force: rt.Force})
			if err != nil {
				return err
			}
			if result.Written {
				p.Success(MsgWritten, result.Path)
				return nil
			}
			p.Printf("%s", result.Content)
			return nil
		},
	}
	generate.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)

	cmd.AddCommand(generate)
	return cmd
}
