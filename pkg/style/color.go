package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal
const DefaultWidth = 100

// ColorEnabled reports whether styled output should be written to f:
// NO_COLOR unset, f a terminal and the terminal able to show color.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// Configure switches pterm and lipgloss to plain output when color is off.
func Configure(color bool) {
	if color {
		pterm.EnableStyling()
		return
	}
	pterm.DisableStyling()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// Width returns the terminal width of f, or DefaultWidth.
func Width(f *os.File) int {
	if !term.IsTerminal(int(f.Fd())) {
		return DefaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}
