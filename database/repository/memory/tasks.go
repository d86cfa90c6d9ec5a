// Package memory holds map-backed repositories used by service and handler
// tests in place of MongoDB.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"taskly/database"
	"taskly/models"
)

// TaskStore is an in-memory TaskRepository.
type TaskStore struct {
	mu    sync.Mutex
	tasks map[string]models.Task

	// UpdateErr, when set, is returned by Update.
	UpdateErr error
}

func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[string]models.Task)}
}

func (s *TaskStore) Create(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.ID]; exists {
		return fmt.Errorf("task %s already exists", task.ID)
	}
	s.tasks[task.ID] = cloneTask(*task)
	return nil
}

func (s *TaskStore) GetByID(_ context.Context, id string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, database.ErrNotFound)
	}
	out := cloneTask(task)
	return &out, nil
}

func (s *TaskStore) GetByIDForUser(ctx context.Context, id, userID string) (*models.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, fmt.Errorf("task %s: %w", id, database.ErrNotFound)
	}
	return task, nil
}

func (s *TaskStore) ListByUser(_ context.Context, userID string, filter models.TaskFilter) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]models.Task, 0)
	for _, t := range s.tasks {
		if t.UserID != userID {
			continue
		}
		if filter.IsCompleted != nil && t.IsCompleted != *filter.IsCompleted {
			continue
		}
		tasks = append(tasks, cloneTask(t))
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (s *TaskStore) Update(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	if _, ok := s.tasks[task.ID]; !ok {
		return fmt.Errorf("task %s: %w", task.ID, database.ErrNotFound)
	}
	s.tasks[task.ID] = cloneTask(*task)
	return nil
}

func (s *TaskStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("task %s: %w", id, database.ErrNotFound)
	}
	delete(s.tasks, id)
	return nil
}

// Len reports the number of stored tasks.
func (s *TaskStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func cloneTask(t models.Task) models.Task {
	if t.ReminderMinutes != nil {
		m := *t.ReminderMinutes
		t.ReminderMinutes = &m
	}
	return t
}
