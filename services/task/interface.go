package task

import (
	"context"
	"time"

	taskRepo "taskly/database/repository/task"
	"taskly/models"
	"taskly/services/reminder"

	"go.uber.org/zap"
)

type TaskService interface {
	CreateTask(ctx context.Context, userID string, input models.CreateTaskInput) (*models.Task, error)
	GetTasks(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error)
	GetTaskByID(ctx context.Context, userID, taskID string) (*models.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, input models.UpdateTaskInput) (*models.Task, error)
	CompleteTask(ctx context.Context, userID, taskID string) (*models.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
}

// DefaultTaskService is the production implementation.
type DefaultTaskService struct {
	Repo      taskRepo.TaskRepository
	Reminders reminder.ReminderScheduler
	now       func() time.Time
	logger    *zap.Logger
}

func NewTaskService(repo taskRepo.TaskRepository, reminders reminder.ReminderScheduler, logger *zap.Logger) *DefaultTaskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultTaskService{
		Repo:      repo,
		Reminders: reminders,
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock replaces the time source used for deadline validation.
func (s *DefaultTaskService) WithClock(now func() time.Time) *DefaultTaskService {
	s.now = now
	return s
}
