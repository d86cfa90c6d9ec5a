package user

import (
	"context"
	"time"

	userRepo "taskly/database/repository/user"
	"taskly/models"
)

type UserService interface {
	// Authentication
	Register(ctx context.Context, input models.RegisterInput) (*models.AuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*models.AuthResponse, error)

	// User Management
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo          userRepo.UserRepository
	TokenDuration time.Duration
}

func NewUserService(repo userRepo.UserRepository, tokenDuration time.Duration) *DefaultUserService {
	if tokenDuration <= 0 {
		tokenDuration = time.Hour
	}
	return &DefaultUserService{Repo: repo, TokenDuration: tokenDuration}
}
