package task

import (
	"context"
	"errors"
	"fmt"

	"taskly/database"
	"taskly/models"
	"taskly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CreateTask validates the input, stores the task and schedules its first
// reminder. A reminder that cannot be stored is logged; the task is still returned.
func (s *DefaultTaskService) CreateTask(ctx context.Context, userID string, input models.CreateTaskInput) (*models.Task, error) {
	title, err := normalizeTitle(input.Title)
	if err != nil {
		return nil, err
	}
	description, err := normalizeDescription(input.Description)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := validateDeadline(input.Deadline, now); err != nil {
		return nil, err
	}
	if err := validateReminderMinutes(input.ReminderMinutes); err != nil {
		return nil, err
	}

	task := &models.Task{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           title,
		Description:     description,
		Deadline:        input.Deadline,
		ReminderMinutes: input.ReminderMinutes,
		IsCompleted:     false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Repo.Create(ctx, task); err != nil {
		return nil, utils.NewInternalError("Failed to create task", err)
	}

	if _, err := s.Reminders.OnTaskCreated(ctx, task); err != nil {
		s.logger.Error("[TaskService] ❌ Failed to schedule reminder",
			zap.String("taskID", task.ID), zap.Error(err))
	}
	return task, nil
}

func (s *DefaultTaskService) GetTasks(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error) {
	tasks, err := s.Repo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch tasks", err)
	}
	return tasks, nil
}

func (s *DefaultTaskService) GetTaskByID(ctx context.Context, userID, taskID string) (*models.Task, error) {
	return s.loadOwned(ctx, userID, taskID)
}

// UpdateTask applies a partial update. Reminders are only touched when the
// deadline actually changes or the task gets completed.
func (s *DefaultTaskService) UpdateTask(ctx context.Context, userID, taskID string, input models.UpdateTaskInput) (*models.Task, error) {
	task, err := s.loadOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if err := validateReminderMinutes(input.ReminderMinutes); err != nil {
		return nil, err
	}

	if input.Title != nil {
		title, err := normalizeTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		task.Title = title
	}
	if input.Description != nil {
		description, err := normalizeDescription(*input.Description)
		if err != nil {
			return nil, err
		}
		task.Description = description
	}
	if input.IsCompleted != nil {
		task.IsCompleted = *input.IsCompleted
	}
	if input.ReminderMinutes != nil {
		task.ReminderMinutes = input.ReminderMinutes
	}

	now := s.now()
	deadlineChanged := input.Deadline != nil && !sameDeadline(*input.Deadline, task.Deadline)
	if deadlineChanged {
		if err := validateDeadline(*input.Deadline, now); err != nil {
			return nil, err
		}
		task.Deadline = *input.Deadline
	}

	task.UpdatedAt = now
	if err := s.Repo.Update(ctx, task); err != nil {
		return nil, utils.NewInternalError("Failed to update task", err)
	}

	if deadlineChanged {
		if _, err := s.Reminders.OnDeadlineChanged(ctx, task, input.ReminderMinutes); err != nil {
			return nil, utils.NewInternalError("Failed to reschedule reminder", err)
		}
	}
	if input.IsCompleted != nil && *input.IsCompleted {
		if err := s.Reminders.OnTaskCompleted(ctx, task.ID); err != nil {
			return nil, utils.NewInternalError("Failed to clear reminders", err)
		}
	}
	return task, nil
}

// CompleteTask marks a task done and drops its pending reminders. Completing
// an already-completed task returns it unchanged.
func (s *DefaultTaskService) CompleteTask(ctx context.Context, userID, taskID string) (*models.Task, error) {
	task, err := s.loadOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task.IsCompleted {
		return task, nil
	}

	task.IsCompleted = true
	task.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, task); err != nil {
		return nil, utils.NewInternalError("Failed to complete task", err)
	}
	if err := s.Reminders.OnTaskCompleted(ctx, task.ID); err != nil {
		return nil, utils.NewInternalError("Failed to clear reminders", err)
	}
	return task, nil
}

// DeleteTask removes the task and all of its reminders concurrently.
func (s *DefaultTaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	task, err := s.loadOwned(ctx, userID, taskID)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Repo.Delete(gctx, task.ID)
	})
	g.Go(func() error {
		return s.Reminders.OnTaskDeleted(gctx, task.ID)
	})
	if err := g.Wait(); err != nil {
		return utils.NewInternalError("Failed to delete task", err)
	}
	return nil
}

// loadOwned validates taskID and returns the task if userID owns it. Tasks
// owned by someone else are reported as not found.
func (s *DefaultTaskService) loadOwned(ctx context.Context, userID, taskID string) (*models.Task, error) {
	if err := validateTaskID(taskID); err != nil {
		return nil, err
	}
	task, err := s.Repo.GetByIDForUser(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NewNotFoundError("Task not found")
		}
		return nil, utils.NewInternalError("Failed to fetch task", fmt.Errorf("load task %s: %w", taskID, err))
	}
	return task, nil
}
