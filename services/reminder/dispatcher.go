package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"taskly/config"
	reminderRepo "taskly/database/repository/reminder"
	"taskly/models"
	"taskly/services/notification"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrCycleFailure marks a dispatch cycle that could not load its due set.
var ErrCycleFailure = errors.New("reminder dispatch cycle failed")

const (
	msgTaskOrUserNotFound = "Task or user not found"
	msgSendFailed         = "Failed to send email"
)

// CycleResult summarises one dispatch cycle.
type CycleResult struct {
	Due     int `json:"due"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Stale   int `json:"stale"`
	Skipped int `json:"skipped"`
}

type outcome string

const (
	outcomeSent    outcome = "sent"
	outcomeFailed  outcome = "failed"
	outcomeStale   outcome = "stale"
	outcomeSkipped outcome = "skipped"
)

func (r *CycleResult) record(o outcome) {
	switch o {
	case outcomeSent:
		r.Sent++
	case outcomeFailed:
		r.Failed++
	case outcomeStale:
		r.Stale++
	case outcomeSkipped:
		r.Skipped++
	}
}

// Dispatcher scans due reminders and delivers them.
type Dispatcher struct {
	reminders reminderRepo.ReminderRepository
	notifier  notification.NotificationService
	settings  config.ReminderSettings
	now       func() time.Time
	logger    *zap.Logger
}

func NewDispatcher(
	reminders reminderRepo.ReminderRepository,
	notifier notification.NotificationService,
	settings config.ReminderSettings,
	logger *zap.Logger,
) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		reminders: reminders,
		notifier:  notifier,
		settings:  settings,
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock replaces the time source.
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// ProcessPendingReminders runs one dispatch cycle. Individual reminder
// failures are recorded on the reminder and never abort the cycle; only a
// failed due-set query returns an error, wrapping ErrCycleFailure.
func (d *Dispatcher) ProcessPendingReminders(ctx context.Context) (CycleResult, error) {
	ctx = context.WithoutCancel(ctx)
	started := time.Now()
	defer func() { DispatchDuration.Observe(time.Since(started).Seconds()) }()

	now := d.now()
	if d.settings.ClaimTimeout > 0 {
		released, err := d.reminders.ReleaseStaleClaims(ctx, now.Add(-d.settings.ClaimTimeout))
		if err != nil {
			d.logger.Warn("[ReminderDispatch] ⚠️ Failed to release stale claims", zap.Error(err))
		} else if released > 0 {
			d.logger.Warn("[ReminderDispatch] ♻️ Released stale reminder claims", zap.Int64("count", released))
		}
	}

	due, err := d.reminders.FindDuePending(ctx, now)
	if err != nil {
		DispatchCycles.WithLabelValues("failure").Inc()
		d.logger.Error("[ReminderDispatch] ❌ Failed to load due reminders", zap.Error(err))
		return CycleResult{}, fmt.Errorf("%w: %w", ErrCycleFailure, err)
	}
	d.logger.Info("[ReminderDispatch] 🚀 Found pending reminders to process", zap.Int("count", len(due)))

	result := CycleResult{Due: len(due)}
	var mu sync.Mutex

	limit := d.settings.Concurrency
	if limit <= 0 {
		limit = 1
	}
	g := new(errgroup.Group)
	g.SetLimit(limit)

	for _, item := range due {
		item := item
		g.Go(func() error {
			o := d.processReminder(ctx, item)
			DispatchOutcomes.WithLabelValues(string(o)).Inc()
			mu.Lock()
			result.record(o)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	DispatchCycles.WithLabelValues("success").Inc()
	d.logger.Info("[ReminderDispatch] ✅ Cycle complete",
		zap.Int("due", result.Due),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed),
		zap.Int("stale", result.Stale),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

func (d *Dispatcher) processReminder(ctx context.Context, item models.DueReminder) (o outcome) {
	id := item.Reminder.ID

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("[ReminderDispatch] 💥 Panic while processing reminder",
				zap.String("reminderID", id), zap.Any("panic", r))
			o = d.fail(ctx, id, models.FailureProcessingError, fmt.Sprint(r))
		}
	}()

	claimed, err := d.reminders.Claim(ctx, id, d.now())
	if err != nil {
		return d.fail(ctx, id, models.FailureProcessingError, err.Error())
	}
	if !claimed {
		d.logger.Debug("[ReminderDispatch] ⏭️ Reminder already claimed", zap.String("reminderID", id))
		return outcomeSkipped
	}

	if item.Task == nil || item.User == nil {
		return d.fail(ctx, id, models.FailureNotFound, msgTaskOrUserNotFound)
	}

	if item.Task.IsCompleted {
		if err := d.reminders.DeleteByID(ctx, id); err != nil {
			return d.fail(ctx, id, models.FailureProcessingError, err.Error())
		}
		d.logger.Debug("[ReminderDispatch] 🧹 Dropped reminder of completed task",
			zap.String("reminderID", id), zap.String("taskID", item.Task.ID))
		return outcomeStale
	}

	sent := d.notifier.SendTaskReminder(ctx, notification.ReminderEmail{
		UserEmail:       item.User.Email,
		UserName:        item.User.Name,
		TaskTitle:       item.Task.Title,
		TaskDescription: item.Task.Description,
		Deadline:        item.Task.Deadline,
	})
	if !sent {
		return d.fail(ctx, id, models.FailureDelivery, msgSendFailed)
	}

	if err := d.reminders.MarkSent(ctx, id, d.now()); err != nil {
		return d.fail(ctx, id, models.FailureProcessingError, err.Error())
	}
	d.logger.Info("[ReminderDispatch] 📧 Reminder sent",
		zap.String("reminderID", id), zap.String("task", item.Task.Title))
	return outcomeSent
}

func (d *Dispatcher) fail(ctx context.Context, id string, kind models.ReminderFailureKind, message string) outcome {
	failure := models.ReminderFailure{Kind: kind, Message: message}
	if err := d.reminders.MarkFailed(ctx, id, failure); err != nil {
		d.logger.Error("[ReminderDispatch] ❌ Failed to mark reminder failed",
			zap.String("reminderID", id), zap.Error(err))
	} else {
		d.logger.Warn("[ReminderDispatch] ⚠️ Reminder failed",
			zap.String("reminderID", id), zap.String("kind", string(kind)), zap.String("message", message))
	}
	return outcomeFailed
}
