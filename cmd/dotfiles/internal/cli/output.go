package cli

import (
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/style"
)

// Describe is an error's message with its hint, if any, appended.
func Describe(err error) string {
	if hint := errors.Hint(err); hint != "" {
		return err.Error() + " (" + hint + ")"
	}
	return err.Error()
}

// PrintError prints err and, on its own line, its hint
func PrintError(p *style.Printer, err error) {
	p.Error("%s", err.Error())
	if hint := errors.Hint(err); hint != "" {
		p.Muted("  %s", hint)
	}
}

// FailIf returns ErrReported when any failure was counted
func FailIf(failures int) error {
	if failures > 0 {
		return ErrReported
	}
	return nil
}
