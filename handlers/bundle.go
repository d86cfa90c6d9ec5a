package handlers

import (
	userRepoPkg "taskly/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all your endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// Auth endpoints
	RegisterUserHandler     gin.HandlerFunc
	AuthenticateUserHandler gin.HandlerFunc
	GetCurrentUserHandler   gin.HandlerFunc

	// Task endpoints
	CreateTaskHandler   gin.HandlerFunc
	GetTasksHandler     gin.HandlerFunc
	GetTaskByIDHandler  gin.HandlerFunc
	UpdateTaskHandler   gin.HandlerFunc
	CompleteTaskHandler gin.HandlerFunc
	DeleteTaskHandler   gin.HandlerFunc

	// Reminder endpoints
	GetReminderStatsHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle wires handler methods into a bundle.
func NewHandlerBundle(users userRepoPkg.UserRepository, userH *UserHandler, taskH *TaskHandler, reminderH *ReminderHandler) *HandlerBundle {
	return &HandlerBundle{
		UserRepo: users,

		RegisterUserHandler:     userH.RegisterUserHandler,
		AuthenticateUserHandler: userH.AuthenticateUserHandler,
		GetCurrentUserHandler:   userH.GetCurrentUserHandler,

		CreateTaskHandler:   taskH.CreateTaskHandler,
		GetTasksHandler:     taskH.GetTasksHandler,
		GetTaskByIDHandler:  taskH.GetTaskByIDHandler,
		UpdateTaskHandler:   taskH.UpdateTaskHandler,
		CompleteTaskHandler: taskH.CompleteTaskHandler,
		DeleteTaskHandler:   taskH.DeleteTaskHandler,

		GetReminderStatsHandler: reminderH.GetReminderStatsHandler,

		HealthHandler: HealthHandler,
	}
}
