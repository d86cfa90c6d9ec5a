package reminder

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"taskly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchSendsDueReminder(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t)
	task := f.addTask(t, u.ID, baseTime.Add(time.Hour), nil)
	r := f.addDue(t, task.ID, u.ID)

	res, err := f.dispatcher(t).ProcessPendingReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CycleResult{Due: 1, Sent: 1}, res)

	got, ok := f.reminders.Get(r.ID)
	require.True(t, ok)
	assert.Equal(t, models.ReminderSent, got.Status)
	require.NotNil(t, got.SentAt)
	assert.Equal(t, baseTime, *got.SentAt)
	assert.Nil(t, got.ClaimedAt)

	calls := f.notifier.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, u.Email, calls[0].UserEmail)
	assert.Equal(t, u.Name, calls[0].UserName)
	assert.Equal(t, task.Title, calls[0].TaskTitle)
	assert.Equal(t, task.Description, calls[0].TaskDescription)
	assert.Equal(t, task.Deadline, calls[0].Deadline)
}

func TestDispatchDeletesReminderOfCompletedTask(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t)
	task := f.addTask(t, u.ID, baseTime.Add(time.Hour), nil)
	task.IsCompleted = true
	require.NoError(t, f.tasks.Update(context.Background(), task))
	r := f.addDue(t, task.ID, u.ID)

	res, err := f.dispatcher(t).ProcessPendingReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CycleResult{Due: 1, Stale: 1}, res)

	_, ok := f.reminders.Get(r.ID)
	assert.False(t, ok)
	assert.Empty(t, f.notifier.Calls())
}

func TestDispatchFailsWhenTaskOrUserMissing(t *testing.T) {
	t.Run("missing task", func(t *testing.T) {
		f := newFixture(t)
		u := f.addUser(t)
		r := f.addDue(t, "no-such-task", u.ID)

		res, err := f.dispatcher(t).ProcessPendingReminders(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, res.Failed)

		got, _ := f.reminders.Get(r.ID)
		assert.Equal(t, models.ReminderFailed, got.Status)
		assert.Equal(t, models.FailureNotFound, got.ErrorKind)
		assert.Equal(t, "Task or user not found", got.ErrorMessage)
		assert.Empty(t, f.notifier.Calls())
	})

	t.Run("missing user", func(t *testing.T) {
		f := newFixture(t)
		u := f.addUser(t)
		task := f.addTask(t, u.ID, baseTime.Add(time.Hour), nil)
		r := f.addDue(t, task.ID, u.ID)
		f.users.Delete(u.ID)

		_, err := f.dispatcher(t).ProcessPendingReminders(context.Background())
		require.NoError(t, err)

		got, _ := f.reminders.Get(r.ID)
		assert.Equal(t, models.ReminderFailed, got.Status)
		assert.Equal(t, "Task or user not found", got.ErrorMessage)
		assert.Empty(t, f.notifier.Calls())
	})
}

func TestDispatchMarksDeliveryFailure(t *testing.T) {
	f := newFixture(t)
	f.notifier.result = false
	u := f.addUser(t)
	task := f.addTask(t, u.ID, baseTime.Add(time.Hour), nil)
	r := f.addDue(t, task.ID, u.ID)

	res, err := f.dispatcher(t).ProcessPendingReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CycleResult{Due: 1, Failed: 1}, res)

	got, _ := f.reminders.Get(r.ID)
	assert.Equal(t, models.ReminderFailed, got.Status)
	assert.Equal(t, models.FailureDelivery, got.ErrorKind)
	assert.Equal(t, "Failed to send email", got.ErrorMessage)
	assert.Nil(t, got.SentAt)
	assert.Len(t, f.notifier.Calls(), 1)
}

func TestDispatchFailedReminderIsNotRetried(t *testing.T) {
	f := newFixture(t)
	f.notifier.result = false
	u := f.addUser(t)
	task := f.addTask(t, u.ID, baseTime.Add(time.Hour), nil)
	f.addDue(t, task.ID, u.ID)
	d := f.dispatcher(t)

	_, err := d.ProcessPendingReminders(context.Background())
	require.NoError(t, err)
	f.notifier.result = true
	res, err := d.ProcessPendingReminders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, CycleResult{}, res)
	assert.Len(t, f.notifier.Calls(), 1)
}

func TestDispatchQueryFailureAbortsCycle(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t)
	task := f.addTask(t, u.ID, baseTime.Add(time.Hour), nil)
	r := f.addDue(t, task.ID, u.ID)
	f.reminders.FindDueErr = errors.New("connection reset")

	res, err := f.dispatcher(t).ProcessPendingReminders(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCycleFailure)
	assert.ErrorIs(t, err, f.reminders.FindDueErr)
	assert.Equal(t, CycleResult{}, res)

	got, _ := f.reminders.Get(r.ID)
	assert.Equal(t, models.ReminderPending, got.Status)
	assert.Empty(t, f.notifier.Calls())
}

func TestDispatchIgnoresRemindersNotYetDue(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t)
	task := f.addTask(t, u.ID, baseTime.Add(5*time.Hour), nil)
	future := models.Reminder{ID: "future", TaskID: task.ID, UserID: u.ID, Status: models.ReminderPending, ScheduledAt: baseTime.Add(time.Minute)}
	f.reminders.Put(future)

	res, err := f.dispatcher(t).ProcessPendingReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Due)

	got, _ := f.reminders.Get("future")
	assert.Equal(t, models.ReminderPending, got.Status)
}

func TestDispatchSkipsReminderClaimedElsewhere(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t)
	task := f.addTask(t, u.ID, baseTime.Add(time.Hour), nil)
	r := f.addDue(t, task.ID, u.ID)
	// Another cycle finishes the reminder between the scan and the claim.
	f.reminders.BeforeClaim = func(id string) {
		_ = f.reminders.MarkSent(context.Background(), id, baseTime)
	}

	res, err := f.dispatcher(t).ProcessPendingReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CycleResult{Due: 1, Skipped: 1}, res)
	assert.Empty(t, f.notifier.Calls())

	got, _ := f.reminders.Get(r.ID)
	assert.Equal(t, models.ReminderSent, got.Status)
}

func TestDispatchRecordsProcessingErrors(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t)
	task := f.addTask(t, u.ID, baseTime.Add(time.Hour), nil)
	r := f.addDue(t, task.ID, u.ID)
	f.reminders.MarkSentErr = errors.New("write conflict")

	res, err := f.dispatcher(t).ProcessPendingReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)

	got, _ := f.reminders.Get(r.ID)
	assert.Equal(t, models.ReminderFailed, got.Status)
	assert.Equal(t, models.FailureProcessingError, got.ErrorKind)
	assert.Equal(t, "write conflict", got.ErrorMessage)
}

func TestDispatchPanicDoesNotAbortBatch(t *testing.T) {
	f := newFixture(t)
	f.notifier.panicOn = "boom"
	u := f.addUser(t)

	bad := f.addTask(t, u.ID, baseTime.Add(time.Hour), nil)
	bad.Title = "boom"
	require.NoError(t, f.tasks.Update(context.Background(), bad))
	badReminder := f.addDue(t, bad.ID, u.ID)

	good := f.addTask(t, u.ID, baseTime.Add(time.Hour), nil)
	goodReminder := f.addDue(t, good.ID, u.ID)

	res, err := f.dispatcher(t).ProcessPendingReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CycleResult{Due: 2, Sent: 1, Failed: 1}, res)

	got, _ := f.reminders.Get(badReminder.ID)
	assert.Equal(t, models.ReminderFailed, got.Status)
	assert.Equal(t, models.FailureProcessingError, got.ErrorKind)
	assert.Equal(t, "template exploded", got.ErrorMessage)

	got, _ = f.reminders.Get(goodReminder.ID)
	assert.Equal(t, models.ReminderSent, got.Status)
}

func TestDispatchReleasesStaleClaims(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t)
	task := f.addTask(t, u.ID, baseTime.Add(time.Hour), nil)

	claimedAt := baseTime.Add(-30 * time.Minute)
	f.reminders.Put(models.Reminder{
		ID:          "stuck",
		TaskID:      task.ID,
		UserID:      u.ID,
		Status:      models.ReminderProcessing,
		ScheduledAt: baseTime.Add(-time.Hour),
		ClaimedAt:   &claimedAt,
	})
	recent := baseTime.Add(-time.Minute)
	f.reminders.Put(models.Reminder{
		ID:          "in-flight",
		TaskID:      task.ID,
		UserID:      u.ID,
		Status:      models.ReminderProcessing,
		ScheduledAt: baseTime.Add(-time.Hour),
		ClaimedAt:   &recent,
	})

	res, err := f.dispatcher(t).ProcessPendingReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CycleResult{Due: 1, Sent: 1}, res)

	got, _ := f.reminders.Get("stuck")
	assert.Equal(t, models.ReminderSent, got.Status)
	got, _ = f.reminders.Get("in-flight")
	assert.Equal(t, models.ReminderProcessing, got.Status)
}

func TestDispatchIgnoresCallerCancellation(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t)
	task := f.addTask(t, u.ID, baseTime.Add(time.Hour), nil)
	f.addDue(t, task.ID, u.ID)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := f.dispatcher(t).ProcessPendingReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	require.Len(t, f.notifier.ctxErrs, 1)
	assert.NoError(t, f.notifier.ctxErrs[0])
}

func TestDispatchConcurrentDeliversEachOnce(t *testing.T) {
	f := newFixture(t)
	f.settings.Concurrency = 4
	u := f.addUser(t)
	for i := 0; i < 20; i++ {
		task := f.addTask(t, u.ID, baseTime.Add(time.Hour), nil)
		task.Title = fmt.Sprintf("task-%d", i)
		require.NoError(t, f.tasks.Update(context.Background(), task))
		f.addDue(t, task.ID, u.ID)
	}

	res, err := f.dispatcher(t).ProcessPendingReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CycleResult{Due: 20, Sent: 20}, res)

	seen := make(map[string]int)
	for _, c := range f.notifier.Calls() {
		seen[c.TaskTitle]++
	}
	assert.Len(t, seen, 20)
	for title, n := range seen {
		assert.Equal(t, 1, n, title)
	}
}

func TestCreateThenDispatchScenario(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t)
	task := f.addTask(t, u.ID, baseTime.Add(2*time.Hour), intPtr(30))

	r, err := f.scheduler(t).OnTaskCreated(context.Background(), task)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, baseTime.Add(90*time.Minute), r.ScheduledAt)

	d := f.dispatcher(t)
	// Not due yet at creation time.
	res, err := d.ProcessPendingReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Due)

	f.clock.Set(baseTime.Add(95 * time.Minute))
	res, err = d.ProcessPendingReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CycleResult{Due: 1, Sent: 1}, res)

	got, _ := f.reminders.Get(r.ID)
	assert.Equal(t, models.ReminderSent, got.Status)
	assert.Equal(t, baseTime.Add(95*time.Minute), *got.SentAt)
}
