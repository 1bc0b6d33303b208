package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/style"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := dotfiles.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Failures were already printed item by item
		if errors.IsErrorCode(err, errors.ErrReported) {
			stop()
			os.Exit(1)
		}
		cli.PrintError(style.NewPrinter(os.Stderr, style.Width(os.Stderr)), err)
		stop()
		os.Exit(1)
	}
}
