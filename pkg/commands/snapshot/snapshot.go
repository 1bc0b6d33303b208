// Package snapshot binds the backup manager to the tracked manifest.
package snapshot

import (
	"context"

	"github.com/dotfiles-cli/dotfiles/pkg/backup"
	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
)

// CreateOptions holds options for backup create
type CreateOptions struct {
	Env *commands.Env

	// Name defaults to the current timestamp
	Name    string
	Archive bool
}

// Create snapshots every tracked destination applicable to this platform.
func Create(ctx context.Context, opts CreateOptions) (*backup.CreateResult, error) {
	env := opts.Env
	logger := logging.GetLogger("commands.backup")
	done := logging.LogOperationStart(logger, "backup create")
	defer done()

	m, err := env.LoadManifest()
	if err != nil {
		return nil, err
	}
	var dests []string
	for _, entry := range env.Applicable(m) {
		dests = append(dests, entry.Dest)
	}

	return env.Backups().Create(backup.CreateOptions{
		Name:     opts.Name,
		Dests:    dests,
		Archive:  opts.Archive,
		Platform: env.Paths.Platform(),
		Now:      env.Now(),
	})
}

// RestoreOptions holds options for backup restore
type RestoreOptions struct {
	Env  *commands.Env
	Name string
}

// Restore writes a named backup back over the home directory.
func Restore(ctx context.Context, opts RestoreOptions) (*backup.RestoreResult, error) {
	logger := logging.GetLogger("commands.backup")
	done := logging.LogOperationStart(logger, "backup restore")
	defer done()

	return opts.Env.Backups().Restore(opts.Name)
}

// ListOptions holds options for backup list
type ListOptions struct {
	Env *commands.Env
}

// List returns every backup, oldest first.
func List(ctx context.Context, opts ListOptions) ([]backup.Info, error) {
	return opts.Env.Backups().List()
}
