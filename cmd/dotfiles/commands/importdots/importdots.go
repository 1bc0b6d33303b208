package importdots

import (
	"fmt"

	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/importdots"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// NewCommand creates the import command
func NewCommand(rt *cli.Runtime) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "import",
		Short:   MsgShort,
		Long:    MsgLong,
		Args:    cobra.NoArgs,
		GroupID: cli.GroupSync,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			result, err := importdots.Import(importdots.ImportOptions{Env: env, All: all, DryRun: rt.DryRun})
			if err != nil {
				return fmt.Errorf(MsgErrImport, err)
			}

			p := rt.Printer(cmd)
			if len(result.Candidates) == 0 {
				p.Muted(MsgNoCandidates)
				return nil
			}

			p.Info(MsgFound, len(result.Candidates))
			p.Println()
			rows := make([][]string, 0, len(result.Candidates))
			for _, c := range result.Candidates {
				kind := MsgKindFile
				if c.IsDir {
					kind = MsgKindDir
				}
				rows = append(rows, []string{"~/" + c.Dest, kind, humanize.Bytes(uint64(c.Size))})
			}
			p.Table([]string{"path", "type", "size"}, rows)
			p.Println()

			switch {
			case !all:
				p.Muted(MsgHintAll)
			case rt.DryRun:
				p.Markup(fmt.Sprintf(MsgWouldAdd, len(result.Candidates)))
			default:
				for _, entry := range result.Added {
					p.Success(MsgAdded, entry.DisplayDest())
				}
				for _, f := range result.Failed {
					p.Error(MsgFailed, f.Dest, cli.Describe(f.Err))
				}
			}
			return cli.FailIf(len(result.Failed))
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, MsgFlagAll)
	return cmd
}
