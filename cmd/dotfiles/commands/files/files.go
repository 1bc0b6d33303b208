// Package files groups the manifest inspection commands.
package files

import (
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/pkg/manifest"
	"github.com/dotfiles-cli/dotfiles/pkg/style"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
	"github.com/spf13/cobra"
)

// NewCommand creates the files command and its subcommands
func NewCommand(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "files",
		Short:   MsgShort,
		GroupID: cli.GroupManage,
	}
	cmd.AddCommand(newListCmd(rt), newCheckCmd(rt))
	return cmd
}

func newListCmd(rt *cli.Runtime) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Long:  MsgListLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			m, err := env.LoadManifest()
			if err != nil {
				return err
			}
			entries := env.Applicable(m)
			if all {
				entries = m.Entries()
			}

			p := rt.Printer(cmd)
			if len(entries) == 0 {
				p.Muted(MsgEmpty)
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				platform := string(e.Platform)
				if e.Platform.IsAll() {
					platform = MsgAllPlatform
				}
				rows = append(rows, []string{
					e.DisplayDest(),
					style.KindStyle(e.Kind).Render(string(e.Kind)),
					e.Source,
					platform,
				})
			}
			p.Table([]string{"dest", "kind", "source", "platform"}, rows)
			p.Println()
			p.Muted(MsgCount, len(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, MsgFlagAll)
	return cmd
}

func newCheckCmd(rt *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: MsgCheckShort,
		Long:  MsgCheckLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			path := env.Paths.ManifestPath()
			issues := manifest.Validate(env.FS, path, env.Paths.DotfilesRoot())

			p := rt.Printer(cmd)
			PrintIssues(p, issues)
			errs := types.CountErrors(issues)
			if len(issues) == 0 {
				p.Success(MsgCheckOK, path)
			} else {
				p.Println()
				p.Warning(MsgCheckFailed, errs, len(issues)-errs, path)
			}
			return cli.FailIf(errs)
		},
	}
}

// PrintIssues prints one line per issue, errors in red
func PrintIssues(p *style.Printer, issues []types.Issue) {
	for _, issue := range issues {
		if issue.Severity == types.SeverityError {
			p.Error("%s", issue.String())
		} else {
			p.Warning("%s", issue.String())
		}
	}
}
