package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"taskly/database"
	userRepo "taskly/database/repository/user"
	"taskly/models"
)

// UserStore is an in-memory UserRepository.
type UserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]models.User)}
}

func (s *UserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	for _, u := range s.users {
		if u.Email == user.Email {
			return userRepo.ErrDuplicateEmail
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, database.ErrNotFound)
	}
	u.PasswordHash = ""
	return &u, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, database.ErrNotFound)
}

// Delete drops a user; used to simulate dangling references.
func (s *UserStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}
