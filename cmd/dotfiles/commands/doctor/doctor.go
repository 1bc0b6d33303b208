// Package doctor binds the health checks to the CLI.
package doctor

import (
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/doctor"
	"github.com/spf13/cobra"
)

// NewCommand creates the doctor command
func NewCommand(rt *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "doctor",
		Short:   MsgShort,
		Long:    MsgLong,
		GroupID: cli.GroupMisc,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			result, err := doctor.Doctor(cli.Context(cmd), doctor.DoctorOptions{Env: env})
			if err != nil {
				return err
			}

			p := rt.Printer(cmd)
			failed := 0
			for _, c := range result.Checks {
				switch {
				case c.OK && c.Detail != "":
					p.Success(MsgDetail, c.Name, c.Detail)
				case c.OK:
					p.Success(MsgCheck, c.Name)
				case c.Advisory:
					p.Warning(MsgOptional, c.Name, c.Detail)
				default:
					failed++
					p.Error(MsgDetail, c.Name, c.Detail)
				}
			}
			p.Info(MsgFiles, result.Summary())

			p.Println()
			if result.OK() {
				p.Success(MsgHealthy)
				return nil
			}
			p.Error(MsgProblems, failed)
			return cli.ErrReported
		},
	}
}
