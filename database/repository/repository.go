package repository

import (
	"context"

	reminderRepo "taskly/database/repository/reminder"
	taskRepo "taskly/database/repository/task"
	userRepo "taskly/database/repository/user"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the TaskRepository interface and constructor.
type TaskRepository = taskRepo.TaskRepository

var NewMongoTaskRepo = taskRepo.NewMongoTaskRepo

// Re-export the ReminderRepository interface and constructor.
type ReminderRepository = reminderRepo.ReminderRepository

var NewMongoReminderRepo = reminderRepo.NewMongoReminderRepo

// Re-export the UserRepository interface and constructor.
type UserRepository = userRepo.UserRepository

var NewMongoUserRepository = userRepo.NewMongoUserRepo

// Repositories groups every collection-backed store the app uses.
type Repositories struct {
	Tasks     TaskRepository
	Reminders ReminderRepository
	Users     UserRepository
}

// NewMongoRepositories builds all repositories on db, creating indexes as it goes.
func NewMongoRepositories(ctx context.Context, db *mongo.Database) (*Repositories, error) {
	tasks, err := NewMongoTaskRepo(ctx, db)
	if err != nil {
		return nil, err
	}
	reminders, err := NewMongoReminderRepo(ctx, db)
	if err != nil {
		return nil, err
	}
	users, err := NewMongoUserRepository(ctx, db)
	if err != nil {
		return nil, err
	}
	return &Repositories{Tasks: tasks, Reminders: reminders, Users: users}, nil
}
