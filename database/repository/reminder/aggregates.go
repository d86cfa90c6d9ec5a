package reminderRepo

import (
	"context"
	"fmt"
	"time"

	"taskly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// dueReminderDoc is the shape produced by the due-set pipeline.
type dueReminderDoc struct {
	models.Reminder `bson:",inline"`
	Task            *models.Task `bson:"task,omitempty"`
	User            *models.User `bson:"user,omitempty"`
}

func (r *mongoReminderRepo) FindDuePending(ctx context.Context, now time.Time) ([]models.DueReminder, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":      models.ReminderPending,
			"scheduledAt": bson.M{"$lte": now},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "scheduledAt", Value: 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         r.tasksCollName,
			"localField":   "taskId",
			"foreignField": "id",
			"as":           "task",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         r.usersCollName,
			"localField":   "userId",
			"foreignField": "id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$task", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$unwind", Value: bson.M{"path": "$user", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{"user.passwordHash": 0}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to query due reminders: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []dueReminderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode due reminders: %w", err)
	}

	due := make([]models.DueReminder, 0, len(docs))
	for _, d := range docs {
		due = append(due, models.DueReminder{Reminder: d.Reminder, Task: d.Task, User: d.User})
	}
	return due, nil
}

func (r *mongoReminderRepo) CountByStatus(ctx context.Context, userID string) (map[models.ReminderStatus]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reminder stats for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status models.ReminderStatus `bson:"_id"`
		Count  int                   `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode reminder stats: %w", err)
	}

	stats := make(map[models.ReminderStatus]int, len(rows))
	for _, row := range rows {
		stats[row.Status] = row.Count
	}
	return stats, nil
}
