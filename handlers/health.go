package handlers

import (
	"net/http"
	"time"

	"taskly/config"
	"taskly/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /api/health. The process answers 200 while it is
// up; dependency state comes from the last background health check.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Task reminder API is running",
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"environment":  config.GetEnv(),
		"dependencies": status,
	})
}
