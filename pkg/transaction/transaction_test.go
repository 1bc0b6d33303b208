// pkg/transaction/transaction_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: synthfs pipeline
// PURPOSE: Verify step ordering, commit and reverse-order rollback

package transaction_test

import (
	"context"
	"testing"

	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(log *[]string, entry string) func() error {
	return func() error {
		*log = append(*log, entry)
		return nil
	}
}

func TestRun_ExecutesStepsInOrder(t *testing.T) {
	var log []string
	tx := transaction.New("test").
		Step("one", record(&log, "do one"), record(&log, "undo one")).
		Step("two", record(&log, "do two"), nil).
		Step("three", record(&log, "do three"), record(&log, "undo three"))

	require.NoError(t, tx.Run(context.Background()))
	assert.Equal(t, []string{"do one", "do two", "do three"}, log)
	assert.Equal(t, 3, tx.Len())
}

func TestRun_FailureUndoesCompletedSteps(t *testing.T) {
	var log []string
	cause := errors.New(errors.ErrFileWrite, "disk full")

	tx := transaction.New("test").
		Step("one", record(&log, "do one"), record(&log, "undo one")).
		Step("two", record(&log, "do two"), record(&log, "undo two")).
		Step("three", func() error { return cause }, record(&log, "undo three")).
		Step("four", record(&log, "do four"), record(&log, "undo four"))

	err := tx.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))
	assert.Equal(t, []string{"do one", "do two", "undo two", "undo one"}, log)
}

func TestRun_Empty(t *testing.T) {
	assert.NoError(t, transaction.New("empty").Run(context.Background()))
}
