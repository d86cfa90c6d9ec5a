package reminder

import (
	"context"
	"fmt"
	"time"

	"taskly/config"
	reminderRepo "taskly/database/repository/reminder"
	"taskly/models"

	"go.uber.org/zap"
)

// ReminderScheduler keeps a task's reminders in line with its lifecycle.
type ReminderScheduler interface {
	// OnTaskCreated creates the initial PENDING reminder when it would fire in
	// the future. It returns nil when no reminder was created.
	OnTaskCreated(ctx context.Context, task *models.Task) (*models.Reminder, error)
	// OnDeadlineChanged replaces the task's PENDING reminders after its deadline moved.
	OnDeadlineChanged(ctx context.Context, task *models.Task, reminderMinutes *int) (*models.Reminder, error)
	// OnTaskCompleted drops the task's PENDING reminders.
	OnTaskCompleted(ctx context.Context, taskID string) error
	// OnTaskDeleted drops every reminder of the task.
	OnTaskDeleted(ctx context.Context, taskID string) error
}

// DefaultReminderScheduler is the store-backed ReminderScheduler.
type DefaultReminderScheduler struct {
	reminders reminderRepo.ReminderRepository
	settings  config.ReminderSettings
	now       func() time.Time
	logger    *zap.Logger
}

func NewReminderScheduler(reminders reminderRepo.ReminderRepository, settings config.ReminderSettings, logger *zap.Logger) *DefaultReminderScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultReminderScheduler{
		reminders: reminders,
		settings:  settings,
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock replaces the time source.
func (s *DefaultReminderScheduler) WithClock(now func() time.Time) *DefaultReminderScheduler {
	s.now = now
	return s
}

func (s *DefaultReminderScheduler) OnTaskCreated(ctx context.Context, task *models.Task) (*models.Reminder, error) {
	offset := CreationOffset(task.ReminderMinutes, s.settings.CreationOffset)
	scheduledAt := ScheduledAt(task.Deadline, offset)

	if !scheduledAt.After(s.now()) {
		s.logger.Debug("[ReminderScheduler] ⏭️ Reminder time already passed, none created",
			zap.String("taskID", task.ID), zap.Time("scheduledAt", scheduledAt))
		return nil, nil
	}

	r, err := s.reminders.CreatePending(ctx, task.ID, task.UserID, scheduledAt, task.ReminderMinutes)
	if err != nil {
		return nil, fmt.Errorf("schedule reminder for task %s: %w", task.ID, err)
	}
	s.logger.Info("[ReminderScheduler] ⏰ Reminder scheduled",
		zap.String("taskID", task.ID), zap.String("reminderID", r.ID), zap.Time("scheduledAt", scheduledAt))
	return r, nil
}

func (s *DefaultReminderScheduler) OnDeadlineChanged(ctx context.Context, task *models.Task, reminderMinutes *int) (*models.Reminder, error) {
	removed, err := s.reminders.DeletePendingForTask(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("clear pending reminders for task %s: %w", task.ID, err)
	}
	if removed > 0 {
		s.logger.Debug("[ReminderScheduler] 🧹 Removed stale pending reminders",
			zap.String("taskID", task.ID), zap.Int64("count", removed))
	}

	offset := RescheduleOffset(reminderMinutes, s.settings.RescheduleOffset)
	if offset <= 0 || task.IsCompleted {
		return nil, nil
	}

	scheduledAt := ScheduledAt(task.Deadline, offset)
	if !scheduledAt.After(s.now()) {
		return nil, nil
	}

	r, err := s.reminders.CreatePending(ctx, task.ID, task.UserID, scheduledAt, nil)
	if err != nil {
		return nil, fmt.Errorf("reschedule reminder for task %s: %w", task.ID, err)
	}
	s.logger.Info("[ReminderScheduler] 🔁 Reminder rescheduled",
		zap.String("taskID", task.ID), zap.String("reminderID", r.ID), zap.Time("scheduledAt", scheduledAt))
	return r, nil
}

func (s *DefaultReminderScheduler) OnTaskCompleted(ctx context.Context, taskID string) error {
	if _, err := s.reminders.DeletePendingForTask(ctx, taskID); err != nil {
		return fmt.Errorf("clear pending reminders for task %s: %w", taskID, err)
	}
	return nil
}

func (s *DefaultReminderScheduler) OnTaskDeleted(ctx context.Context, taskID string) error {
	if _, err := s.reminders.DeleteAllForTask(ctx, taskID); err != nil {
		return fmt.Errorf("delete reminders for task %s: %w", taskID, err)
	}
	return nil
}
