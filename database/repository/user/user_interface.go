package userRepo

import (
	"context"

	"taskly/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by their unique ID. The password hash is not loaded.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by email, password hash included.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts a new user record. A duplicate email yields ErrDuplicateEmail.
	Create(ctx context.Context, user *models.User) error
}
