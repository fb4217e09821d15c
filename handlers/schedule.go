package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	scheduleRepo "bookwise/database/repository/schedule"
	"bookwise/models"
	"bookwise/utils"
)

// ScheduleHandler manages a tenant's weekly availability settings.
type ScheduleHandler struct {
	Repo scheduleRepo.ScheduleRepository
}

func NewScheduleHandler(repo scheduleRepo.ScheduleRepository) *ScheduleHandler {
	return &ScheduleHandler{Repo: repo}
}

// GetSchedule handles GET /api/tenants/:id/schedule.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	logger := getLogger(c)
	tenantID := c.Param("id")

	avail, err := h.Repo.GetWeeklyAvailability(c.Request.Context(), tenantID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Tenant not found")
			return
		}
		logger.Error("Failed to fetch schedule", zap.String("tenantId", tenantID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch schedule")
		return
	}
	c.JSON(http.StatusOK, avail)
}

// UpdateSchedule handles PUT /api/tenants/:id/schedule. Only the
// weekday range is validated here; malformed HH:MM strings are stored
// as-is and simply resolve to closed days, so a half-finished settings
// form can never break availability reads.
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	logger := getLogger(c)
	tenantID := c.Param("id")

	var avail models.WeeklyAvailability
	if err := c.ShouldBindJSON(&avail); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: " + err.Error())
		return
	}

	if err := h.Repo.UpdateWeeklyAvailability(c.Request.Context(), tenantID, avail); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Tenant not found")
			return
		}
		logger.Error("Failed to update schedule", zap.String("tenantId", tenantID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update schedule")
		return
	}
	c.JSON(http.StatusOK, avail)
}
