package handlers

import (
	"net/http"

	"taskly/models"
	"taskly/services/task"
	"taskly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService task.TaskService
}

func NewTaskHandler(taskService task.TaskService) *TaskHandler {
	return &TaskHandler{TaskService: taskService}
}

// CreateTaskHandler handles POST /api/tasks.
func (h *TaskHandler) CreateTaskHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var input models.CreateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	created, err := h.TaskService.CreateTask(c.Request.Context(), userID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Task created", zap.String("taskID", created.ID), zap.String("userID", userID))
	respond(c, http.StatusCreated, "Task created successfully", created)
}

// GetTasksHandler handles GET /api/tasks?isCompleted=true|false.
func (h *TaskHandler) GetTasksHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var filter models.TaskFilter
	if raw, present := c.GetQuery("isCompleted"); present {
		completed := raw == "true"
		filter.IsCompleted = &completed
	}

	tasks, err := h.TaskService.GetTasks(c.Request.Context(), userID, filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Tasks retrieved successfully", tasks)
}

// GetTaskByIDHandler handles GET /api/tasks/:id.
func (h *TaskHandler) GetTaskByIDHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	t, err := h.TaskService.GetTaskByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Task retrieved successfully", t)
}

// UpdateTaskHandler handles PUT /api/tasks/:id.
func (h *TaskHandler) UpdateTaskHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var input models.UpdateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	t, err := h.TaskService.UpdateTask(c.Request.Context(), userID, c.Param("id"), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Task updated successfully", t)
}

// CompleteTaskHandler handles PATCH /api/tasks/:id/complete.
func (h *TaskHandler) CompleteTaskHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	t, err := h.TaskService.CompleteTask(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Task marked as completed", t)
}

// DeleteTaskHandler handles DELETE /api/tasks/:id.
func (h *TaskHandler) DeleteTaskHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.TaskService.DeleteTask(c.Request.Context(), userID, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Task deleted", zap.String("taskID", c.Param("id")), zap.String("userID", userID))
	respond(c, http.StatusOK, "Task deleted successfully", nil)
}
