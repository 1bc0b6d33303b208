// Package validate binds repository validation to the CLI.
package validate

import (
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/files"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/validate"
	"github.com/dotfiles-cli/dotfiles/pkg/style"
	"github.com/spf13/cobra"
)

// NewCommand creates the validate command
func NewCommand(rt *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "validate",
		Short:   MsgShort,
		Long:    MsgLong,
		GroupID: cli.GroupManage,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			report, err := validate.Validate(cli.Context(cmd), validate.ValidateOptions{Env: env})
			if err != nil {
				return err
			}

			p := rt.Printer(cmd)
			for _, doc := range report.Documents {
				switch {
				case !doc.Present && doc.Optional:
					p.Muted(MsgAbsent, doc.Name)
				case doc.Valid() && len(doc.Issues) == 0:
					p.Success(MsgValid, doc.Name)
				case doc.Valid():
					p.Warning(MsgValid, doc.Name)
				default:
					p.Error(MsgValid, doc.Name)
				}
				files.PrintIssues(p, doc.Issues)
			}
			p.Summary(
				style.Count{Label: MsgErrors, N: report.Errors(), Tone: style.ToneError},
				style.Count{Label: MsgWarning, N: report.Warnings(), Tone: style.ToneAlert},
			)
			return cli.FailIf(report.Errors())
		},
	}
}
