package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"taskly/database"
	"taskly/models"

	"github.com/google/uuid"
)

// ReminderStore is an in-memory ReminderRepository. FindDuePending joins
// against the task and user stores it was built with.
type ReminderStore struct {
	mu        sync.Mutex
	reminders map[string]models.Reminder
	tasks     *TaskStore
	users     *UserStore

	// Fault injection for tests.
	FindDueErr       error
	CreateErr        error
	DeletePendingErr error
	MarkSentErr      error
	// BeforeClaim runs before each Claim and may mutate the store.
	BeforeClaim func(id string)
}

func NewReminderStore(tasks *TaskStore, users *UserStore) *ReminderStore {
	return &ReminderStore{
		reminders: make(map[string]models.Reminder),
		tasks:     tasks,
		users:     users,
	}
}

func (s *ReminderStore) CreatePending(_ context.Context, taskID, userID string, scheduledAt time.Time, reminderMinutes *int) (*models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	now := time.Now()
	r := models.Reminder{
		ID:              uuid.NewString(),
		TaskID:          taskID,
		UserID:          userID,
		ScheduledAt:     scheduledAt,
		Status:          models.ReminderPending,
		ReminderMinutes: reminderMinutes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.reminders[r.ID] = r
	return &r, nil
}

// Put stores a reminder as-is, for seeding fixtures.
func (s *ReminderStore) Put(r models.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.reminders[r.ID] = r
}

// Get returns a stored reminder by ID.
func (s *ReminderStore) Get(id string) (models.Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reminders[id]
	return r, ok
}

// All returns every stored reminder ordered by scheduledAt.
func (s *ReminderStore) All() []models.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked(func(models.Reminder) bool { return true })
}

func (s *ReminderStore) DeletePendingForTask(_ context.Context, taskID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DeletePendingErr != nil {
		return 0, s.DeletePendingErr
	}
	var n int64
	for id, r := range s.reminders {
		if r.TaskID == taskID && (r.Status == models.ReminderPending || r.Status == models.ReminderProcessing) {
			delete(s.reminders, id)
			n++
		}
	}
	return n, nil
}

func (s *ReminderStore) DeleteAllForTask(_ context.Context, taskID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, r := range s.reminders {
		if r.TaskID == taskID {
			delete(s.reminders, id)
			n++
		}
	}
	return n, nil
}

func (s *ReminderStore) FindDuePending(ctx context.Context, now time.Time) ([]models.DueReminder, error) {
	s.mu.Lock()
	if s.FindDueErr != nil {
		s.mu.Unlock()
		return nil, s.FindDueErr
	}
	due := s.sortedLocked(func(r models.Reminder) bool {
		return r.Status == models.ReminderPending && !r.ScheduledAt.After(now)
	})
	s.mu.Unlock()

	out := make([]models.DueReminder, 0, len(due))
	for _, r := range due {
		item := models.DueReminder{Reminder: r}
		if s.tasks != nil {
			if t, err := s.tasks.GetByID(ctx, r.TaskID); err == nil {
				item.Task = t
			}
		}
		if s.users != nil {
			if u, err := s.users.GetByID(ctx, r.UserID); err == nil {
				item.User = u
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *ReminderStore) Claim(_ context.Context, id string, now time.Time) (bool, error) {
	if s.BeforeClaim != nil {
		s.BeforeClaim(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reminders[id]
	if !ok || r.Status != models.ReminderPending {
		return false, nil
	}
	r.Status = models.ReminderProcessing
	claimed := now
	r.ClaimedAt = &claimed
	r.UpdatedAt = now
	s.reminders[id] = r
	return true, nil
}

func (s *ReminderStore) ReleaseStaleClaims(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, r := range s.reminders {
		if r.Status == models.ReminderProcessing && r.ClaimedAt != nil && r.ClaimedAt.Before(before) {
			r.Status = models.ReminderPending
			r.ClaimedAt = nil
			r.UpdatedAt = time.Now()
			s.reminders[id] = r
			n++
		}
	}
	return n, nil
}

func (s *ReminderStore) MarkSent(_ context.Context, id string, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.MarkSentErr != nil {
		return s.MarkSentErr
	}
	r, ok := s.reminders[id]
	if !ok {
		return fmt.Errorf("reminder %s: %w", id, database.ErrNotFound)
	}
	r.Status = models.ReminderSent
	at := sentAt
	r.SentAt = &at
	r.ClaimedAt = nil
	r.UpdatedAt = time.Now()
	s.reminders[id] = r
	return nil
}

func (s *ReminderStore) MarkFailed(_ context.Context, id string, failure models.ReminderFailure) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reminders[id]
	if !ok {
		return fmt.Errorf("reminder %s: %w", id, database.ErrNotFound)
	}
	r.Status = models.ReminderFailed
	r.ErrorKind = failure.Kind
	r.ErrorMessage = failure.Message
	r.ClaimedAt = nil
	r.UpdatedAt = time.Now()
	s.reminders[id] = r
	return nil
}

func (s *ReminderStore) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reminders[id]; !ok {
		return fmt.Errorf("reminder %s: %w", id, database.ErrNotFound)
	}
	delete(s.reminders, id)
	return nil
}

func (s *ReminderStore) CountByStatus(_ context.Context, userID string) (map[models.ReminderStatus]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := make(map[models.ReminderStatus]int)
	for _, r := range s.reminders {
		if r.UserID == userID {
			stats[r.Status]++
		}
	}
	return stats, nil
}

func (s *ReminderStore) ListByTask(_ context.Context, taskID string) ([]models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked(func(r models.Reminder) bool { return r.TaskID == taskID }), nil
}

func (s *ReminderStore) sortedLocked(keep func(models.Reminder) bool) []models.Reminder {
	out := make([]models.Reminder, 0)
	for _, r := range s.reminders {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out
}
