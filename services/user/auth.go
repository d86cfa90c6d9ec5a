package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskly/database"
	userRepo "taskly/database/repository/user"
	"taskly/models"
	"taskly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "Invalid email or password"

// Register creates an account and returns it with a fresh token.
func (s *DefaultUserService) Register(ctx context.Context, input models.RegisterInput) (*models.AuthResponse, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" || input.Password == "" {
		return nil, utils.NewValidationError("name, email and password are required")
	}

	// Hash the provided password.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Failed to hash password", zap.Error(err))
		return nil, utils.NewInternalError("registration failed, please try again", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Persist the new user; the unique email index catches duplicates.
	if err := s.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, userRepo.ErrDuplicateEmail) {
			return nil, utils.NewConflictError("Email already registered")
		}
		utils.GetLogger().Error("Failed to create user", zap.Error(err))
		return nil, utils.NewInternalError("registration failed, please try again", err)
	}

	return s.issueToken(user)
}

// Authenticate verifies credentials and returns the user with a new token.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NewUnauthorizedError(invalidCredentials)
		}
		utils.GetLogger().Error("Failed to fetch user for authentication", zap.Error(err))
		return nil, utils.NewInternalError("authentication failed, please try again", err)
	}

	// Verify the provided password.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, utils.NewUnauthorizedError(invalidCredentials)
	}

	return s.issueToken(user)
}

func (s *DefaultUserService) issueToken(user *models.User) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(user.ID, user.Email, s.TokenDuration)
	if err != nil {
		utils.GetLogger().Error("Failed to generate auth token", zap.Error(err))
		return nil, utils.NewInternalError("failed to generate token", fmt.Errorf("sign token for %s: %w", user.ID, err))
	}

	public := *user
	public.PasswordHash = ""
	return &models.AuthResponse{User: public, Token: token}, nil
}
