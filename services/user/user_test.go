package user

import (
	"context"
	"testing"
	"time"

	"taskly/database/repository/memory"
	"taskly/models"
	"taskly/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *DefaultUserService {
	return NewUserService(memory.NewUserStore(), time.Hour)
}

func register(t *testing.T, svc *DefaultUserService) *models.AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), models.RegisterInput{
		Name:     " Ada Lovelace ",
		Email:    "Ada@Example.com",
		Password: "s3cret!",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterIssuesToken(t *testing.T) {
	svc := newTestService()
	resp := register(t, svc)

	assert.NotEmpty(t, resp.User.ID)
	assert.Equal(t, "Ada Lovelace", resp.User.Name)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.Empty(t, resp.User.PasswordHash)

	sub, err := utils.ExtractIDFromToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, sub)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newTestService()
	register(t, svc)

	_, err := svc.Register(context.Background(), models.RegisterInput{
		Name:     "Someone",
		Email:    "ada@example.com",
		Password: "another",
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))
	assert.Equal(t, "Email already registered", err.Error())
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService()
	registered := register(t, svc)

	resp, err := svc.Authenticate(context.Background(), "ada@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, resp.User.ID)
	assert.Empty(t, resp.User.PasswordHash)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Authenticate(context.Background(), "ada@example.com", "wrong")
	assert.Equal(t, utils.KindUnauthorized, utils.KindOf(err))
	assert.Equal(t, "Invalid email or password", err.Error())

	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "s3cret!")
	assert.Equal(t, utils.KindUnauthorized, utils.KindOf(err))
	assert.Equal(t, "Invalid email or password", err.Error())
}

func TestGetUserByID(t *testing.T) {
	svc := newTestService()
	registered := register(t, svc)

	u, err := svc.GetUserByID(context.Background(), registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Empty(t, u.PasswordHash)

	_, err = svc.GetUserByID(context.Background(), "missing")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}
