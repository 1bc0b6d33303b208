package apply

import (
	"fmt"

	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/apply"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/style"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
	"github.com/spf13/cobra"
)

// NewCommand creates the apply command
func NewCommand(rt *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "apply",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.NoArgs,
		GroupID: cli.GroupSync,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			report, err := apply.Apply(cli.Context(cmd), apply.ApplyOptions{
				Env:    env,
				Force:  rt.Force,
				DryRun: rt.DryRun,
			})
			if report != nil {
				Render(rt.Printer(cmd), report)
			}
			if err != nil {
				return fmt.Errorf(MsgErrApply, err)
			}
			return cli.FailIf(report.Errored)
		},
	}
}

// Render prints one line per entry and the summary. pull reuses it.
func Render(p *style.Printer, report *apply.Report) {
	if report.DryRun {
		p.Markup(MsgDryRunNotice)
	}
	if len(report.Items) == 0 {
		p.Muted(MsgNothingToDo)
		return
	}
	for _, item := range report.Items {
		p.Entry(line(item))
	}
	if report.BackupDir != "" {
		p.Info(MsgBackedUp, report.BackupFiles, report.BackupDir)
	}
	p.Summary(
		style.Count{Label: MsgLabelApplied, N: report.Applied, Tone: style.ToneSuccess},
		style.Count{Label: MsgLabelSkipped, N: report.Skipped, Tone: style.ToneAlert},
		style.Count{Label: MsgLabelErrored, N: report.Errored, Tone: style.ToneError},
	)
}

func line(item apply.Item) style.EntryLine {
	l := style.EntryLine{Kind: item.Entry.Kind, Dest: item.Entry.DisplayDest()}
	switch {
	case item.Outcome == apply.OutcomeErrored:
		l.Tone = style.ToneError
		if errors.IsErrorCode(item.Err, errors.ErrFileNotFound) {
			l.Message = MsgSourceMissing + ": " + item.Entry.Source
		} else {
			l.Message = cli.Describe(item.Err)
		}
	case item.Plan == apply.PlanOK, item.Action == types.ActionOK:
		l.Tone, l.Message = style.ToneMuted, MsgUnchanged
	case item.Plan == apply.PlanCreate:
		l.Tone = style.ToneQueue
	case item.Plan == apply.PlanReplace:
		l.Tone, l.Message = style.ToneQueue, fmt.Sprintf(MsgWillReplace, item.Status.Label())
	case item.Plan == apply.PlanSkip:
		l.Tone, l.Message = style.ToneAlert, item.Status.Label()+", "+MsgUseForce
	case item.Outcome == apply.OutcomeSkipped:
		l.Tone, l.Message = style.ToneAlert, MsgConflict
	default:
		l.Tone = style.ToneSuccess
	}
	return l
}
