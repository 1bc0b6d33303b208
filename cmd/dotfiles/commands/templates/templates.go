// Package templates binds template rendering to the CLI.
package templates

import (
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/pkg/templates"
	"github.com/spf13/cobra"
)

// NewCommand creates the templates command
func NewCommand(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"template"},
		Short:   MsgShort,
		Long:    MsgLong,
		GroupID: cli.GroupManage,
	}

	render := &cobra.Command{
		Use:   "render <template> <output>",
		Short: MsgRenderShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			src, err := env.Paths.ResolveUserPath(args[0])
			if err != nil {
				return err
			}
			dest, err := env.Paths.ResolveUserPath(args[1])
			if err != nil {
				return err
			}
			p := rt.Printer(cmd)
			if rt.DryRun {
				p.Info(MsgDryRun, src, dest)
				return nil
			}
			vars, err := env.Vars()
			if err != nil {
				return err
			}
			if err := templates.RenderFile(env.FS, src, dest, vars); err != nil {
				return err
			}
			p.Success(MsgRendered, src, dest)
			return nil
		},
	}

	vars := &cobra.Command{
		Use:   "vars",
		Short: MsgVarsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			resolved, err := env.Vars()
			if err != nil {
				return err
			}
			p := rt.Printer(cmd)
			if profile := templates.ActiveProfile(env.Config.Templates.Profile); profile != "" {
				p.Info(MsgProfile, profile)
			} else {
				p.Muted(MsgNoProfile)
			}
			list := resolved.List()
			rows := make([][]string, 0, len(list))
			for _, v := range list {
				rows = append(rows, []string{v.Name, v.Value, string(v.Source)})
			}
			p.Table([]string{"name", "value", "source"}, rows)
			return nil
		},
	}

	cmd.AddCommand(render, vars)
	return cmd
}
