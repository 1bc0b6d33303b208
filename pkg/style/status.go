package style

import (
	"fmt"

	"github.com/dotfiles-cli/dotfiles/pkg/types"
	"github.com/pterm/pterm"
)

// Tone is how an entry line is colored
type Tone string

const (
	ToneSuccess Tone = "success" // in place or just applied
	ToneError   Tone = "error"   // the operation failed
	ToneQueue   Tone = "queue"   // would change on the next run
	ToneAlert   Tone = "alert"   // needs the user: conflicts, wrong links
	ToneMuted   Tone = "muted"   // skipped or not applicable
)

// KindVerbs holds past and future tense verbs per entry kind
var KindVerbs = map[types.Kind]struct {
	Past   string
	Future string
}{
	types.KindSymlink: {Past: "linked to", Future: "will be linked to"},
	types.KindCopy:    {Past: "copied to", Future: "will be copied to"},
}

// ToneStyle returns the pterm style for a tone
func ToneStyle(t Tone) *pterm.Style {
	switch t {
	case ToneSuccess:
		return pterm.NewStyle(pterm.FgGreen)
	case ToneError:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case ToneQueue:
		return pterm.NewStyle(pterm.FgYellow)
	case ToneAlert:
		return pterm.NewStyle(pterm.FgLightRed)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// StatusTone maps a comparison status to a tone
func StatusTone(s types.Status) Tone {
	switch s {
	case types.StatusOK:
		return ToneSuccess
	case types.StatusMissing, types.StatusChanged:
		return ToneQueue
	default:
		return ToneAlert
	}
}

// EntryLine is one manifest entry in command output
type EntryLine struct {
	Kind types.Kind
	Dest string
	Tone Tone
	// Message replaces the verb phrase when set
	Message string
}

// RenderEntryLine renders "    symlink : ~/.vimrc : linked to ~/.vimrc"-style
// lines with the kind column colored by tone.
func RenderEntryLine(l EntryLine) string {
	kind := ToneStyle(l.Tone).Sprint(fmt.Sprintf("%-8s", l.Kind))
	msg := l.Message
	if msg == "" {
		if verbs, ok := KindVerbs[l.Kind]; ok {
			switch l.Tone {
			case ToneSuccess:
				msg = verbs.Past + " " + l.Dest
			case ToneQueue:
				msg = verbs.Future + " " + l.Dest
			case ToneError:
				msg = "failed"
			}
		}
	}
	return fmt.Sprintf("    %s : %-24s : %s", kind, l.Dest, msg)
}
