package collect

import (
	"context"

	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/hooks"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/reconcile"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

// Outcome classifies what happened to one entry.
type Outcome string

const (
	OutcomeCollected Outcome = "collected"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeErrored   Outcome = "errored"
)

// Reasons an entry is skipped
const (
	NoteNotFound  = "not found"
	NoteSymlink   = "symlink"
	NoteUnchanged = "unchanged"
)

// Item is the result for one entry.
type Item struct {
	Entry   types.FileEntry
	Outcome Outcome
	Note    string
	Files   int
	Err     error
}

// Report aggregates one collect run.
type Report struct {
	Items     []Item
	Collected int
	Skipped   int
	Errored   int
	DryRun    bool
}

func (r *Report) add(item Item) {
	r.Items = append(r.Items, item)
	switch item.Outcome {
	case OutcomeCollected:
		r.Collected++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeErrored:
		r.Errored++
	}
}

// CollectOptions holds options for the collect command
type CollectOptions struct {
	Env    *commands.Env
	DryRun bool
}

// Collect copies home destinations that drifted from the repository back
// over their sources. Linked destinations already are the source and are
// skipped. Directories are replaced wholesale.
func Collect(ctx context.Context, opts CollectOptions) (*Report, error) {
	env := opts.Env
	logger := logging.GetLogger("commands.collect")
	done := logging.LogOperationStart(logger, "collect")
	defer done()

	m, err := env.LoadManifest()
	if err != nil {
		return nil, err
	}

	report := &Report{DryRun: opts.DryRun}
	entries := env.Applicable(m)
	if len(entries) == 0 {
		return report, nil
	}

	if !opts.DryRun {
		if err := env.RunHook(ctx, "collect", hooks.PhasePre); err != nil {
			return nil, err
		}
	}

	for _, entry := range entries {
		item := collectEntry(env, entry, opts.DryRun)
		logger.Info().
			Str("dest", entry.Dest).
			Str("outcome", string(item.Outcome)).
			Str("note", item.Note).
			Err(item.Err).
			Msg("entry processed")
		report.add(item)
	}

	if !opts.DryRun {
		if err := env.RunHook(ctx, "collect", hooks.PhasePost); err != nil {
			return report, err
		}
	}
	return report, nil
}

func collectEntry(env *commands.Env, entry types.FileEntry, dryRun bool) Item {
	item := Item{Entry: entry}
	source, dest := env.SourcePath(entry), env.DestPath(entry)

	if !env.Exists(dest) {
		item.Outcome, item.Note = OutcomeSkipped, NoteNotFound
		return item
	}
	if env.IsLink(dest) {
		item.Outcome, item.Note = OutcomeSkipped, NoteSymlink
		return item
	}

	same, err := unchanged(env.FS, source, dest)
	if err != nil {
		item.Outcome, item.Err = OutcomeErrored, err
		return item
	}
	if same {
		item.Outcome, item.Note = OutcomeSkipped, NoteUnchanged
		return item
	}

	item.Outcome = OutcomeCollected
	if dryRun {
		return item
	}

	n, err := reconcile.ReplaceTree(env.FS, dest, source)
	item.Files = n
	if err != nil {
		item.Outcome, item.Err = OutcomeErrored, err
	}
	return item
}

// unchanged reports whether dest holds exactly what source holds. A
// missing source is never unchanged.
func unchanged(fs types.FS, source, dest string) (bool, error) {
	srcInfo, err := fs.Lstat(source)
	if err != nil {
		return false, nil
	}
	destInfo, err := fs.Lstat(dest)
	if err != nil {
		return false, nil
	}
	switch {
	case srcInfo.Mode().IsRegular() && destInfo.Mode().IsRegular():
		return reconcile.FilesEqual(fs, source, dest)
	case srcInfo.IsDir() && destInfo.IsDir():
		return reconcile.TreesEqual(fs, source, dest)
	default:
		return false, nil
	}
}
