package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"taskly/services/reminder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type countingRunner struct {
	calls atomic.Int32
	res   reminder.CycleResult
	err   error
}

func (r *countingRunner) ProcessPendingReminders(context.Context) (reminder.CycleResult, error) {
	r.calls.Add(1)
	return r.res, r.err
}

func TestNewReminderCronRejectsInvalidSpec(t *testing.T) {
	_, err := NewReminderCron(&countingRunner{}, "every now and then", zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestRunNowReturnsCycleResult(t *testing.T) {
	runner := &countingRunner{res: reminder.CycleResult{Due: 2, Sent: 2}}
	rc, err := NewReminderCron(runner, "*/15 * * * *", zaptest.NewLogger(t))
	require.NoError(t, err)

	res, err := rc.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reminder.CycleResult{Due: 2, Sent: 2}, res)
	assert.Equal(t, int32(1), runner.calls.Load())
}

func TestRunNowPropagatesCycleFailure(t *testing.T) {
	runner := &countingRunner{err: reminder.ErrCycleFailure}
	rc, err := NewReminderCron(runner, "*/15 * * * *", zaptest.NewLogger(t))
	require.NoError(t, err)

	_, err = rc.RunNow(context.Background())
	assert.True(t, errors.Is(err, reminder.ErrCycleFailure))
}

func TestStopWithoutRunningCycle(t *testing.T) {
	// The cron loop logs from its own goroutine, possibly after the test returns.
	rc, err := NewReminderCron(&countingRunner{}, "*/15 * * * *", zap.NewNop())
	require.NoError(t, err)

	rc.Start()
	select {
	case <-rc.Stop().Done():
	case <-time.After(2 * time.Second):
		t.Fatal("cron did not stop")
	}
}
