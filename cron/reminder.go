package cron

import (
	"context"
	"fmt"

	"taskly/services/reminder"

	rcron "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CycleRunner runs one reminder dispatch cycle.
type CycleRunner interface {
	ProcessPendingReminders(ctx context.Context) (reminder.CycleResult, error)
}

// ReminderCron fires the reminder dispatch cycle on a cron schedule. A cycle
// that is still running when the next tick arrives makes that tick a no-op.
type ReminderCron struct {
	c      *rcron.Cron
	runner CycleRunner
	spec   string
	logger *zap.Logger
}

// NewReminderCron validates spec and registers the dispatch job.
func NewReminderCron(runner CycleRunner, spec string, logger *zap.Logger) (*ReminderCron, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cronLogger := rcron.PrintfLogger(zap.NewStdLog(logger.Named("cron")))

	rc := &ReminderCron{
		c: rcron.New(
			rcron.WithLogger(cronLogger),
			rcron.WithChain(rcron.Recover(cronLogger), rcron.SkipIfStillRunning(cronLogger)),
		),
		runner: runner,
		spec:   spec,
		logger: logger,
	}

	if _, err := rc.c.AddFunc(spec, func() {
		_, _ = rc.RunNow(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("invalid reminder cron spec %q: %w", spec, err)
	}
	return rc, nil
}

// Start begins firing on schedule in the background.
func (rc *ReminderCron) Start() {
	rc.logger.Info("[ReminderCron] 🚀 Reminder cron job scheduled", zap.String("spec", rc.spec))
	rc.c.Start()
}

// Stop halts the schedule. The returned context is done once a running cycle finishes.
func (rc *ReminderCron) Stop() context.Context {
	rc.logger.Info("[ReminderCron] 🛑 Stopping reminder cron job")
	return rc.c.Stop()
}

// RunNow executes one cycle synchronously. Errors are logged and returned;
// the next tick starts from scratch.
func (rc *ReminderCron) RunNow(ctx context.Context) (reminder.CycleResult, error) {
	rc.logger.Info("[ReminderCron] ⏰ Running reminder cron job...")
	res, err := rc.runner.ProcessPendingReminders(ctx)
	if err != nil {
		rc.logger.Error("[ReminderCron] ❌ Error in reminder cron job", zap.Error(err))
		return res, err
	}
	return res, nil
}
