package reminderRepo

import (
	"context"
	"fmt"
	"time"

	"taskly/database"
	"taskly/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoReminderRepo) CreatePending(ctx context.Context, taskID, userID string, scheduledAt time.Time, reminderMinutes *int) (*models.Reminder, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	reminder := &models.Reminder{
		ID:              uuid.NewString(),
		TaskID:          taskID,
		UserID:          userID,
		ScheduledAt:     scheduledAt,
		Status:          models.ReminderPending,
		ReminderMinutes: reminderMinutes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := r.coll.InsertOne(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to create reminder for task %s: %w", taskID, err)
	}
	return reminder, nil
}

func (r *mongoReminderRepo) DeletePendingForTask(ctx context.Context, taskID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{
		"taskId": taskID,
		"status": bson.M{"$in": []models.ReminderStatus{models.ReminderPending, models.ReminderProcessing}},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete pending reminders for task %s: %w", taskID, err)
	}
	return res.DeletedCount, nil
}

func (r *mongoReminderRepo) DeleteAllForTask(ctx context.Context, taskID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"taskId": taskID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete reminders for task %s: %w", taskID, err)
	}
	return res.DeletedCount, nil
}

func (r *mongoReminderRepo) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete reminder %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("reminder %s: %w", id, database.ErrNotFound)
	}
	return nil
}

func (r *mongoReminderRepo) ListByTask(ctx context.Context, taskID string) ([]models.Reminder, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"taskId": taskID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders for task %s: %w", taskID, err)
	}
	defer cursor.Close(ctx)

	reminders := make([]models.Reminder, 0)
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode reminders: %w", err)
	}
	return reminders, nil
}
