package status

import (
	"fmt"
	"strings"

	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/status"
	"github.com/dotfiles-cli/dotfiles/pkg/style"
	"github.com/spf13/cobra"
)

// NewCommand creates the status command
func NewCommand(rt *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgShort,
		Long:    MsgLong,
		Args:    cobra.NoArgs,
		GroupID: cli.GroupSync,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			result, err := status.Status(cli.Context(cmd), status.StatusOptions{Env: env})
			if err != nil {
				return fmt.Errorf(MsgErrStatus, err)
			}
			render(rt.Printer(cmd), result)
			return nil
		},
	}
}

func render(p *style.Printer, r *status.Result) {
	p.Printf(MsgRepo+"\n", r.Root, r.Platform)
	p.Printf(MsgEntries+"\n", r.Symlinks, r.Copies)
	if r.Git.Available {
		p.Printf(MsgBranch+"\n", branchLine(r.Git))
	} else {
		p.Muted(MsgNotGit)
	}
	p.Println()

	if r.InSync() {
		p.Success(MsgInSync)
		return
	}
	p.Warning(MsgNeedAttention, len(r.Issues))
	for _, issue := range r.Issues {
		l := style.EntryLine{Kind: issue.Entry.Kind, Dest: issue.Entry.DisplayDest()}
		if issue.SourceMissing {
			l.Tone, l.Message = style.ToneError, MsgSourceMissing+": "+issue.Entry.Source
		} else {
			l.Tone, l.Message = style.StatusTone(issue.Status), issue.Status.Label()
		}
		p.Entry(l)
	}
	p.Println()
	p.Muted(MsgHint)
}

func branchLine(g status.GitState) string {
	parts := []string{g.Branch}
	switch {
	case !g.Tracking.HasUpstream:
		parts = append(parts, MsgNoUpstream)
	case g.Tracking.Ahead == 0 && g.Tracking.Behind == 0:
		parts = append(parts, MsgUpToDate)
	default:
		parts = append(parts, fmt.Sprintf(MsgAheadBehind, g.Tracking.Ahead, g.Tracking.Behind))
	}
	if g.Dirty {
		parts = append(parts, MsgDirty)
	}
	return strings.Join(parts, ", ")
}
