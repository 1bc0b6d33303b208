// Package transaction runs an ordered list of filesystem steps as one unit.
// Steps execute through a synthfs pipeline. When one fails, the steps that
// already completed are undone in reverse order.
package transaction

import (
	"context"
	"fmt"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/rs/zerolog"
)

// Step is one unit of work. Undo may be nil when there is nothing to revert.
type Step struct {
	ID   string
	Do   func() error
	Undo func() error
}

// Transaction collects steps and runs them in the order they were added.
type Transaction struct {
	name   string
	steps  []Step
	logger zerolog.Logger
}

// New creates an empty transaction. The name prefixes every operation ID.
func New(name string) *Transaction {
	return &Transaction{
		name:   name,
		logger: logging.GetLogger("transaction").With().Str("transaction", name).Logger(),
	}
}

// Step appends a step
func (t *Transaction) Step(id string, do func() error, undo func() error) *Transaction {
	t.steps = append(t.steps, Step{ID: id, Do: do, Undo: undo})
	return t
}

// Len returns the number of steps
func (t *Transaction) Len() int {
	return len(t.steps)
}

// Run executes every step. On failure the completed steps are undone and
// the failing step's own error is returned unchanged.
func (t *Transaction) Run(ctx context.Context) error {
	if len(t.steps) == 0 {
		return nil
	}

	sfs := synthfs.New()
	var (
		completed []Step
		failure   error
		failedID  string
	)

	ops := make([]synthfs.Operation, 0, len(t.steps))
	for _, step := range t.steps {
		id := fmt.Sprintf("%s_%s", t.name, step.ID)
		ops = append(ops, sfs.CustomOperationWithID(id, func(ctx context.Context, _ filesystem.FileSystem) error {
			if failure != nil {
				return errors.Newf(errors.ErrInternal, "skipped after %s failed", failedID)
			}
			if err := step.Do(); err != nil {
				failure = err
				failedID = step.ID
				return err
			}
			completed = append(completed, step)
			return nil
		}))
	}

	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = false

	t.logger.Debug().Int("steps", len(ops)).Msg("running transaction")
	result, err := synthfs.RunWithOptions(ctx, rootFS(), options, ops...)
	if err == nil && failure == nil {
		t.logger.Debug().Msg("transaction committed")
		return nil
	}

	t.logFailures(result)
	t.rollback(completed)

	if failure != nil {
		return failure
	}
	return errors.Wrapf(err, errors.ErrInternal, "%s did not complete", t.name)
}

func (t *Transaction) rollback(completed []Step) {
	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		if step.Undo == nil {
			continue
		}
		if err := step.Undo(); err != nil {
			t.logger.Error().Err(err).Str("step", step.ID).Msg("rollback step failed")
			continue
		}
		t.logger.Debug().Str("step", step.ID).Msg("rolled back")
	}
}

func (t *Transaction) logFailures(result *synthfs.Result) {
	if result == nil {
		return
	}
	for _, op := range result.GetOperations() {
		opResult, ok := op.(synthfs.OperationResult)
		if !ok || opResult.Status == synthfs.StatusSuccess {
			continue
		}
		t.logger.Warn().
			Str("operation", string(opResult.OperationID)).
			AnErr("cause", opResult.Error).
			Msg("operation failed")
	}
}

// rootFS is the filesystem handed to the pipeline. Steps close over their
// own types.FS, so this only satisfies the pipeline's signature.
func rootFS() filesystem.FullFileSystem {
	osfs := filesystem.NewOSFileSystem("/")
	return synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths()
}
