package collect

import (
	"fmt"

	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/collect"
	"github.com/dotfiles-cli/dotfiles/pkg/style"
	"github.com/spf13/cobra"
)

// NewCommand creates the collect command
func NewCommand(rt *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "collect",
		Short:   MsgShort,
		Long:    MsgLong,
		Args:    cobra.NoArgs,
		GroupID: cli.GroupSync,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			report, err := collect.Collect(cli.Context(cmd), collect.CollectOptions{Env: env, DryRun: rt.DryRun})
			if report != nil {
				render(rt.Printer(cmd), report)
			}
			if err != nil {
				return fmt.Errorf(MsgErrCollect, err)
			}
			return cli.FailIf(report.Errored)
		},
	}
}

func render(p *style.Printer, report *collect.Report) {
	if report.DryRun {
		p.Markup(MsgDryRunNotice)
	}
	for _, item := range report.Items {
		l := style.EntryLine{Kind: item.Entry.Kind, Dest: item.Entry.DisplayDest()}
		switch item.Outcome {
		case collect.OutcomeCollected:
			l.Tone = style.ToneSuccess
			switch {
			case report.DryRun:
				l.Tone, l.Message = style.ToneQueue, MsgWouldCollect
			case item.Files > 1:
				l.Message = fmt.Sprintf(MsgCollectedFiles, item.Files)
			default:
				l.Message = MsgCollected
			}
		case collect.OutcomeSkipped:
			l.Tone, l.Message = style.ToneMuted, item.Note
		default:
			l.Tone, l.Message = style.ToneError, cli.Describe(item.Err)
		}
		p.Entry(l)
	}
	p.Summary(
		style.Count{Label: MsgLabelCollected, N: report.Collected, Tone: style.ToneSuccess},
		style.Count{Label: MsgLabelSkipped, N: report.Skipped, Tone: style.ToneMuted},
		style.Count{Label: MsgLabelErrored, N: report.Errored, Tone: style.ToneError},
	)
}
