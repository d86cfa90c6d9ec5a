package routes

import (
	"time"

	"taskly/config"
	"taskly/handlers"
	"taskly/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterAuthRoutes registers registration and login endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		api.GET("/me", middleware.JWTAuthUserMiddleware(hb.UserRepo), hb.GetCurrentUserHandler)
	}
}

// RegisterTaskRoutes registers task endpoints. All of them require authentication.
func RegisterTaskRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/tasks")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("", hb.CreateTaskHandler)
		api.GET("", hb.GetTasksHandler)
		api.GET("/:id", hb.GetTaskByIDHandler)
		api.PUT("/:id", hb.UpdateTaskHandler)
		api.PATCH("/:id/complete", hb.CompleteTaskHandler)
		api.DELETE("/:id", hb.DeleteTaskHandler)
	}
}

// RegisterReminderRoutes registers reminder endpoints.
func RegisterReminderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reminders")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/stats", hb.GetReminderStatsHandler)
	}
}

// RegisterHealthRoute registers the health-check and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/health", hb.HealthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			origins = nil
			break
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(corsConfig(config.AppConfig.CORSOrigins)))
	r.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	RegisterHealthRoute(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterTaskRoutes(r, hb)
	RegisterReminderRoutes(r, hb)
}
