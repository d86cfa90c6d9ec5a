package user

import (
	"context"
	"errors"

	"taskly/database"
	"taskly/models"
	"taskly/utils"
)

// GetUserByID returns the public view of a user.
func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NewNotFoundError("User not found")
		}
		return nil, utils.NewInternalError("failed to fetch user", err)
	}
	user.PasswordHash = ""
	return user, nil
}
