package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"taskly/config"
	"taskly/database/repository/memory"
	"taskly/models"
	"taskly/services/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2030, time.June, 1, 12, 0, 0, 0, time.UTC)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type recordingNotifier struct {
	mu      sync.Mutex
	calls   []notification.ReminderEmail
	ctxErrs []error
	result  bool
	panicOn string
}

func (n *recordingNotifier) SendTaskReminder(ctx context.Context, email notification.ReminderEmail) bool {
	if n.panicOn != "" && email.TaskTitle == n.panicOn {
		panic("template exploded")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, email)
	n.ctxErrs = append(n.ctxErrs, ctx.Err())
	return n.result
}

func (n *recordingNotifier) Calls() []notification.ReminderEmail {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notification.ReminderEmail, len(n.calls))
	copy(out, n.calls)
	return out
}

type fixture struct {
	tasks     *memory.TaskStore
	users     *memory.UserStore
	reminders *memory.ReminderStore
	clock     *clock
	notifier  *recordingNotifier
	settings  config.ReminderSettings
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tasks := memory.NewTaskStore()
	users := memory.NewUserStore()
	return &fixture{
		tasks:     tasks,
		users:     users,
		reminders: memory.NewReminderStore(tasks, users),
		clock:     &clock{t: baseTime},
		notifier:  &recordingNotifier{result: true},
		settings: config.ReminderSettings{
			CreationOffset:   24 * time.Hour,
			RescheduleOffset: 60 * time.Minute,
			Concurrency:      1,
			ClaimTimeout:     10 * time.Minute,
		},
	}
}

func (f *fixture) scheduler(t *testing.T) *DefaultReminderScheduler {
	return NewReminderScheduler(f.reminders, f.settings, nil).WithClock(f.clock.Now)
}

func (f *fixture) dispatcher(t *testing.T) *Dispatcher {
	return NewDispatcher(f.reminders, f.notifier, f.settings, nil).WithClock(f.clock.Now)
}

func (f *fixture) addUser(t *testing.T) *models.User {
	t.Helper()
	u := &models.User{ID: uuid.NewString(), Name: "Ada", Email: uuid.NewString() + "@example.com"}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) addTask(t *testing.T, userID string, deadline time.Time, reminderMinutes *int) *models.Task {
	t.Helper()
	task := &models.Task{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           "Write report",
		Description:     "Quarterly numbers",
		Deadline:        deadline,
		ReminderMinutes: reminderMinutes,
		CreatedAt:       f.clock.Now(),
		UpdatedAt:       f.clock.Now(),
	}
	require.NoError(t, f.tasks.Create(context.Background(), task))
	return task
}

// addDue seeds a PENDING reminder that is already due.
func (f *fixture) addDue(t *testing.T, taskID, userID string) models.Reminder {
	t.Helper()
	r := models.Reminder{
		ID:          uuid.NewString(),
		TaskID:      taskID,
		UserID:      userID,
		ScheduledAt: f.clock.Now().Add(-time.Minute),
		Status:      models.ReminderPending,
	}
	f.reminders.Put(r)
	return r
}

func intPtr(v int) *int { return &v }
