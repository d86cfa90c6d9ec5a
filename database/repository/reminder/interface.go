// File: database/repository/reminder/interface.go
package reminderRepo

import (
	"context"
	"time"

	"taskly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ReminderRepository is the persistence contract of the reminder pipeline.
// Every state transition is a single-document update.
type ReminderRepository interface {
	// CreatePending inserts a PENDING reminder for a task.
	CreatePending(ctx context.Context, taskID, userID string, scheduledAt time.Time, reminderMinutes *int) (*models.Reminder, error)
	// DeletePendingForTask removes the task's PENDING and PROCESSING reminders;
	// SENT and FAILED history is kept.
	DeletePendingForTask(ctx context.Context, taskID string) (int64, error)
	// DeleteAllForTask removes every reminder referencing the task.
	DeleteAllForTask(ctx context.Context, taskID string) (int64, error)
	// FindDuePending returns PENDING reminders with scheduledAt <= now joined with task and user.
	FindDuePending(ctx context.Context, now time.Time) ([]models.DueReminder, error)
	// Claim moves a reminder from PENDING to PROCESSING. It reports false when
	// the reminder is no longer PENDING.
	Claim(ctx context.Context, id string, now time.Time) (bool, error)
	// ReleaseStaleClaims returns reminders claimed before the cutoff to PENDING.
	ReleaseStaleClaims(ctx context.Context, before time.Time) (int64, error)
	MarkSent(ctx context.Context, id string, sentAt time.Time) error
	MarkFailed(ctx context.Context, id string, failure models.ReminderFailure) error
	DeleteByID(ctx context.Context, id string) error
	// CountByStatus aggregates a user's reminders per status.
	CountByStatus(ctx context.Context, userID string) (map[models.ReminderStatus]int, error)
	// ListByTask returns all reminders of a task ordered by scheduledAt.
	ListByTask(ctx context.Context, taskID string) ([]models.Reminder, error)
}

type mongoReminderRepo struct {
	coll          *mongo.Collection
	tasksCollName string
	usersCollName string
}

// NewMongoReminderRepo constructs a MongoDB ReminderRepository and ensures its indexes.
func NewMongoReminderRepo(ctx context.Context, db *mongo.Database) (ReminderRepository, error) {
	repo := &mongoReminderRepo{
		coll:          db.Collection("reminders"),
		tasksCollName: "tasks",
		usersCollName: "users",
	}
	if err := repo.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}
