package apply

import (
	"context"

	"github.com/dotfiles-cli/dotfiles/pkg/commands"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/hooks"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/reconcile"
	"github.com/dotfiles-cli/dotfiles/pkg/types"
)

// Outcome classifies what happened to one entry.
type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeSkipped Outcome = "skipped"
	OutcomeErrored Outcome = "errored"
)

// Plan is what a dry run expects create to do for an entry.
type Plan string

const (
	PlanNone    Plan = ""
	PlanOK      Plan = "ok"
	PlanCreate  Plan = "create"
	PlanReplace Plan = "replace"
	PlanSkip    Plan = "skip"
)

// Item is the result for one entry.
type Item struct {
	Entry   types.FileEntry
	Outcome Outcome

	// Action is set for real runs
	Action types.Action

	// Status and Plan are set for dry runs
	Status types.Status
	Plan   Plan

	Err error
}

// Report aggregates one apply run.
type Report struct {
	Items   []Item
	Applied int
	Skipped int
	Errored int
	DryRun  bool

	// BackupDir is set when a forced run backed something up
	BackupDir   string
	BackupFiles int
}

func (r *Report) add(item Item) {
	r.Items = append(r.Items, item)
	switch item.Outcome {
	case OutcomeApplied:
		r.Applied++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeErrored:
		r.Errored++
	}
}

// ApplyOptions holds options for the apply command
type ApplyOptions struct {
	Env    *commands.Env
	Force  bool
	DryRun bool
}

// Apply creates every applicable entry's destination from its repository
// source. Per-entry failures are recorded in the report and never stop the
// run. A forced run shares one pre-apply backup directory that is removed
// again if nothing was written to it.
func Apply(ctx context.Context, opts ApplyOptions) (*Report, error) {
	env := opts.Env
	logger := logging.GetLogger("commands.apply")
	done := logging.LogOperationStart(logger, "apply")
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
		if err := env.RunHook(ctx, "apply", hooks.PhasePre); err != nil {
			return nil, err
		}
	}

	set := env.Reconcilers()

	var backup *reconcile.Backup
	if opts.Force && !opts.DryRun {
		backup = reconcile.NewRunBackup(env.FS, env.BackupRoot(), env.Paths.HomeDir(),
			reconcile.PreApplyPrefix, env.Config.Backup.TimestampFormat, env.Now())
	}

	for _, entry := range entries {
		var item Item
		if opts.DryRun {
			item = plan(env, set, entry, opts.Force)
		} else {
			item = create(env, set, entry, reconcile.Options{Force: opts.Force, Backup: backup})
		}
		logger.Info().
			Str("dest", entry.Dest).
			Str("outcome", string(item.Outcome)).
			Str("action", string(item.Action)).
			Str("plan", string(item.Plan)).
			Err(item.Err).
			Msg("entry processed")
		report.add(item)
	}

	if backup != nil {
		removed, err := backup.Cleanup()
		if err != nil {
			logger.Warn().Err(err).Str("backup", backup.Dir()).Msg("could not remove empty backup")
		}
		if !removed {
			report.BackupDir = backup.Dir()
			report.BackupFiles = backup.Files()
		}
	}

	logger.Info().
		Int("applied", report.Applied).
		Int("skipped", report.Skipped).
		Int("errored", report.Errored).
		Bool("dry_run", opts.DryRun).
		Msg("apply finished")

	if !opts.DryRun {
		if err := env.RunHook(ctx, "apply", hooks.PhasePost); err != nil {
			return report, err
		}
	}
	return report, nil
}

func sourceMissing(env *commands.Env, entry types.FileEntry) error {
	source := env.SourcePath(entry)
	if _, err := env.FS.Stat(source); err != nil {
		return errors.Newf(errors.ErrFileNotFound, "source not found: %s", entry.Source).
			WithDetail("source", source)
	}
	return nil
}

func create(env *commands.Env, set *reconcile.Set, entry types.FileEntry, opts reconcile.Options) Item {
	item := Item{Entry: entry}
	if err := sourceMissing(env, entry); err != nil {
		item.Outcome, item.Err = OutcomeErrored, err
		return item
	}

	r, err := set.For(entry.Kind)
	if err != nil {
		item.Outcome, item.Err = OutcomeErrored, err
		return item
	}

	action, err := r.Create(env.SourcePath(entry), env.DestPath(entry), opts)
	item.Action = action
	switch {
	case err != nil:
		item.Outcome, item.Err = OutcomeErrored, err
	case action == types.ActionConflict:
		item.Outcome = OutcomeSkipped
	default:
		item.Outcome = OutcomeApplied
	}
	return item
}

// plan predicts create from check without touching the filesystem.
func plan(env *commands.Env, set *reconcile.Set, entry types.FileEntry, force bool) Item {
	item := Item{Entry: entry}
	if err := sourceMissing(env, entry); err != nil {
		item.Outcome, item.Err = OutcomeErrored, err
		return item
	}

	r, err := set.For(entry.Kind)
	if err != nil {
		item.Outcome, item.Err = OutcomeErrored, err
		return item
	}

	item.Status = r.Check(env.SourcePath(entry), env.DestPath(entry))
	switch {
	case item.Status == types.StatusOK:
		item.Outcome, item.Plan = OutcomeApplied, PlanOK
	case item.Status == types.StatusMissing:
		item.Outcome, item.Plan = OutcomeApplied, PlanCreate
	case force:
		item.Outcome, item.Plan = OutcomeApplied, PlanReplace
	default:
		item.Outcome, item.Plan = OutcomeSkipped, PlanSkip
	}
	return item
}
