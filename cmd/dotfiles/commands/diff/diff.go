package diff

import (
	"fmt"

	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/diff"
	"github.com/dotfiles-cli/dotfiles/pkg/style"
	"github.com/spf13/cobra"
)

// NewCommand creates the diff command
func NewCommand(rt *cli.Runtime) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:     "diff [file]",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.MaximumNArgs(1),
		GroupID: cli.GroupSync,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			opts := diff.DiffOptions{Env: env, Full: full}
			if len(args) == 1 {
				opts.File = args[0]
			}
			report, err := diff.Diff(cli.Context(cmd), opts)
			if err != nil {
				return fmt.Errorf(MsgErrDiff, err)
			}
			render(rt.Printer(cmd), report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, MsgFlagFull)
	return cmd
}

func render(p *style.Printer, report *diff.Report) {
	var rows [][]string
	for _, item := range report.Items {
		if item.InSync() {
			continue
		}
		status := item.Status.Label()
		if item.SourceMissing {
			status = MsgSourceMissing
		}
		rows = append(rows, []string{item.Entry.DisplayDest(), string(item.Entry.Kind), status, item.Entry.Source})
	}

	if len(rows) == 0 {
		p.Success(MsgAllInSync, len(report.Items))
	} else {
		p.Warning(MsgDrifted, report.Drifted, len(report.Items))
		p.Println()
		p.Table([]string{"dest", "kind", "status", "source"}, rows)
	}

	for _, item := range report.Items {
		if item.Content == "" {
			continue
		}
		p.Println()
		p.Println(style.Bold(item.Entry.DisplayDest()))
		p.Printf("%s", item.Content)
	}

	if !report.GitTracked {
		return
	}
	p.Println()
	if len(report.GitChanges) == 0 {
		p.Muted(MsgGitClean)
		return
	}
	p.Println(MsgGitHeader)
	for _, change := range report.GitChanges {
		p.Println("  " + change)
	}
}
