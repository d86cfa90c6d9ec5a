package handlers

import (
	"net/http"

	"taskly/models"
	"taskly/services/user"
	"taskly/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	UserService user.UserService
}

func NewUserHandler(userService user.UserService) *UserHandler {
	return &UserHandler{UserService: userService}
}

// RegisterUserHandler handles POST /api/auth/register.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.UserService.Register(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "User registered successfully", resp)
}

// AuthenticateUserHandler handles POST /api/auth/login.
func (h *UserHandler) AuthenticateUserHandler(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.UserService.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Login successful", resp)
}

// GetCurrentUserHandler handles GET /api/auth/me.
func (h *UserHandler) GetCurrentUserHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	usr, err := h.UserService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "User retrieved successfully", usr)
}
