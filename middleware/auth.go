package middleware

import (
	"errors"
	"strings"

	"taskly/database"
	userRepo "taskly/database/repository/user"
	"taskly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuthUserMiddleware resolves the bearer token to a stored user and sets
// "userID" in the gin context.
func JWTAuthUserMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, utils.NewUnauthorizedError("No token provided, authorization denied"))
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			utils.RespondError(c, utils.NewUnauthorizedError("No token provided, authorization denied"))
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			utils.RespondError(c, utils.NewUnauthorizedError("Invalid token"))
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				utils.RespondError(c, utils.NewUnauthorizedError("Token is valid but user no longer exists"))
				return
			}
			utils.GetLogger().Error("Auth lookup failed", zap.String("userID", userID), zap.Error(err))
			utils.RespondError(c, utils.NewInternalError("authentication failed", err))
			return
		}

		c.Set("userID", user.ID)
		c.Set("userEmail", user.Email)
		c.Next()
	}
}
