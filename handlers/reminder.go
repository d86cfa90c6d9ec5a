package handlers

import (
	"context"
	"net/http"

	"taskly/services/reminder"
	"taskly/utils"

	"github.com/gin-gonic/gin"
)

// ReminderStatsProvider answers per-user reminder counts.
type ReminderStatsProvider interface {
	GetReminderStats(ctx context.Context, userID string) (reminder.ReminderStats, error)
}

type ReminderHandler struct {
	Stats ReminderStatsProvider
}

func NewReminderHandler(stats ReminderStatsProvider) *ReminderHandler {
	return &ReminderHandler{Stats: stats}
}

// GetReminderStatsHandler handles GET /api/reminders/stats.
func (h *ReminderHandler) GetReminderStatsHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	stats, err := h.Stats.GetReminderStats(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, utils.NewInternalError("Failed to load reminder stats", err))
		return
	}
	respond(c, http.StatusOK, "Reminder stats retrieved successfully", stats)
}
