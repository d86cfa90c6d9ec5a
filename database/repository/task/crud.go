package taskRepo

import (
	"context"
	"fmt"
	"time"

	"taskly/database"
	"taskly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoTaskRepo) Create(ctx context.Context, task *models.Task) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *mongoTaskRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoTaskRepo) GetByIDForUser(ctx context.Context, id, userID string) (*models.Task, error) {
	return r.findOne(ctx, bson.M{"id": id, "userId": userID})
}

func (r *mongoTaskRepo) findOne(ctx context.Context, filter bson.M) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var task models.Task
	if err := r.coll.FindOne(ctx, filter).Decode(&task); err != nil {
		return nil, fmt.Errorf("failed to fetch task: %w", database.MapError(err))
	}
	return &task, nil
}

func (r *mongoTaskRepo) ListByUser(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{"userId": userID}
	if filter.IsCompleted != nil {
		query["isCompleted"] = *filter.IsCompleted
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	tasks := make([]models.Task, 0)
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}

func (r *mongoTaskRepo) Update(ctx context.Context, task *models.Task) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{
		"title":       task.Title,
		"description": task.Description,
		"deadline":    task.Deadline,
		"isCompleted": task.IsCompleted,
		"updatedAt":   task.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if task.ReminderMinutes != nil {
		set["reminderMinutes"] = *task.ReminderMinutes
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": task.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update task with id %s: %w", task.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("task with id %s: %w", task.ID, database.ErrNotFound)
	}
	return nil
}

func (r *mongoTaskRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete task with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("task with id %s: %w", id, database.ErrNotFound)
	}
	return nil
}
