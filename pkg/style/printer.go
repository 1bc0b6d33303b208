package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Count is one figure in a summary line
type Count struct {
	Label string
	N     int
	Tone  Tone
}

var toneStyles = map[Tone]lipgloss.Style{
	ToneSuccess: SuccessStyle,
	ToneError:   ErrorStyle,
	ToneQueue:   WarningStyle,
	ToneAlert:   WarningStyle,
	ToneMuted:   MutedStyle,
}

// Summary renders counts as "3 applied · 1 skipped". Zero counts are muted.
func Summary(counts ...Count) string {
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		text := fmt.Sprintf("%d %s", c.N, c.Label)
		st, ok := toneStyles[c.Tone]
		if c.N == 0 || !ok {
			st = MutedStyle
		}
		parts = append(parts, st.Render(text))
	}
	return strings.Join(parts, MutedStyle.Render(" · "))
}

func prefixPrinter(text string, style *pterm.Style) pterm.PrefixPrinter {
	return pterm.PrefixPrinter{
		Prefix:       pterm.Prefix{Text: text, Style: style},
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
	}
}

var (
	successPrinter = prefixPrinter("✓", pterm.NewStyle(pterm.FgGreen, pterm.Bold))
	warningPrinter = prefixPrinter("!", pterm.NewStyle(pterm.FgYellow, pterm.Bold))
	errorPrinter   = prefixPrinter("✗", pterm.NewStyle(pterm.FgRed, pterm.Bold))
	infoPrinter    = prefixPrinter("•", pterm.NewStyle(pterm.FgCyan))
)

// Printer writes styled command output to one writer.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a printer. Width bounds tables; 0 means unbounded.
func NewPrinter(out io.Writer, width int) *Printer {
	return &Printer{out: out, width: width}
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer {
	return p.out
}

func (p *Printer) Println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

func (p *Printer) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format, a...)
}

// Markup renders [tag]...[/tag] markup and prints it on its own line
func (p *Printer) Markup(text string) {
	fmt.Fprintln(p.out, Render(text))
}

func (p *Printer) Success(format string, a ...interface{}) {
	fmt.Fprint(p.out, successPrinter.Sprintfln(format, a...))
}

func (p *Printer) Warning(format string, a ...interface{}) {
	fmt.Fprint(p.out, warningPrinter.Sprintfln(format, a...))
}

func (p *Printer) Error(format string, a ...interface{}) {
	fmt.Fprint(p.out, errorPrinter.Sprintfln(format, a...))
}

func (p *Printer) Info(format string, a ...interface{}) {
	fmt.Fprint(p.out, infoPrinter.Sprintfln(format, a...))
}

// Muted prints a dimmed line, used for hints and skipped items
func (p *Printer) Muted(format string, a ...interface{}) {
	fmt.Fprintln(p.out, MutedStyle.Render(fmt.Sprintf(format, a...)))
}

// Title prints a bold heading followed by a blank line
func (p *Printer) Title(s string) {
	fmt.Fprintln(p.out, TitleStyle.Render(s))
	fmt.Fprintln(p.out)
}

// Entry prints one manifest entry line
func (p *Printer) Entry(l EntryLine) {
	fmt.Fprintln(p.out, RenderEntryLine(l))
}

// Table prints rows under header
func (p *Printer) Table(header []string, rows [][]string) {
	fmt.Fprint(p.out, RenderTable(header, rows, p.width))
}

// Summary prints a blank line and the summary counts
func (p *Printer) Summary(counts ...Count) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, Summary(counts...))
}
