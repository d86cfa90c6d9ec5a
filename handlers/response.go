package handlers

import (
	"taskly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SuccessResponse is the envelope of every successful API response.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, SuccessResponse{Success: true, Message: message, Data: data})
}

// bindError reports a request body that failed binding or validation.
func bindError(c *gin.Context, err error) {
	getLogger(c).Debug("Request validation failed", zap.Error(err))
	c.AbortWithStatusJSON(utils.HTTPStatus(utils.KindValidation), utils.ErrorResponse{
		Message: "Validation failed",
		Kind:    utils.KindValidation,
		Details: err.Error(),
	})
}

// currentUserID returns the ID set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	id, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	idStr, ok := id.(string)
	return idStr, ok && idStr != ""
}

func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, utils.NewUnauthorizedError("Not authorized"))
		return "", false
	}
	return userID, true
}
