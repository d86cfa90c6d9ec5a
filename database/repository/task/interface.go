// File: database/repository/task/interface.go
package taskRepo

import (
	"context"

	"taskly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// TaskRepository defines methods for task data access.
type TaskRepository interface {
	// Create inserts a new task document.
	Create(ctx context.Context, task *models.Task) error
	// GetByID retrieves a task by ID regardless of owner.
	GetByID(ctx context.Context, id string) (*models.Task, error)
	// GetByIDForUser retrieves a task only if it is owned by userID.
	GetByIDForUser(ctx context.Context, id, userID string) (*models.Task, error)
	// ListByUser returns a user's tasks, newest first.
	ListByUser(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error)
	// Update replaces the mutable fields of a task.
	Update(ctx context.Context, task *models.Task) error
	// Delete removes a task by ID.
	Delete(ctx context.Context, id string) error
}

type mongoTaskRepo struct {
	coll *mongo.Collection
}

// NewMongoTaskRepo constructs a MongoDB TaskRepository and ensures its indexes.
func NewMongoTaskRepo(ctx context.Context, db *mongo.Database) (TaskRepository, error) {
	repo := &mongoTaskRepo{coll: db.Collection("tasks")}
	if err := repo.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}
