package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"mes/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReconcileHandler struct {
	calls chan commands.ReconcileScheduledWorkOrdersCommand
	err   error
}

func (f *fakeReconcileHandler) Handle(_ context.Context, cmd commands.ReconcileScheduledWorkOrdersCommand) error {
	f.calls <- cmd
	return f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReconciliationJob_RunsOnSchedule(t *testing.T) {
	handler := &fakeReconcileHandler{
		calls: make(chan commands.ReconcileScheduledWorkOrdersCommand, 10),
		err:   errors.New("one order failed"),
	}
	job := NewReconciliationJob(handler, "* * * * * *", discardLogger())

	require.NoError(t, job.Start())
	defer job.Stop()

	select {
	case cmd := <-handler.calls:
		assert.NoError(t, cmd.Validate())
	case <-time.After(3 * time.Second):
		t.Fatal("reconciliation job did not run")
	}
}

func TestReconciliationJob_InvalidSchedule(t *testing.T) {
	job := NewReconciliationJob(&fakeReconcileHandler{}, "every minute", discardLogger())

	require.Error(t, job.Start())
}

func TestJobManager(t *testing.T) {
	t.Run("empty schedule disables the job", func(t *testing.T) {
		jm := NewJobManager(&fakeReconcileHandler{}, "", discardLogger())

		require.NoError(t, jm.StartAll())
		jm.StopAll()
		assert.Nil(t, jm.reconciliationJob)
	})

	t.Run("start failure is wrapped", func(t *testing.T) {
		jm := NewJobManager(&fakeReconcileHandler{}, "bad", discardLogger())

		err := jm.StartAll()

		require.ErrorContains(t, err, "failed to start reconciliation job")
	})

	t.Run("starts and stops", func(t *testing.T) {
		jm := NewJobManager(&fakeReconcileHandler{}, DefaultReconcileSchedule, discardLogger())

		require.NoError(t, jm.StartAll())
		jm.StopAll()
	})
}
