package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"bookwise/services/availability"
	"bookwise/utils"
)

// AvailabilityHandler serves slot availability queries.
type AvailabilityHandler struct {
	Service availability.Service
}

func NewAvailabilityHandler(svc availability.Service) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// GetAvailability handles GET /api/tenants/:id/availability?date=YYYY-MM-DD&duration=N.
// An empty slot list is a normal 200 response: closed days, fully
// booked days and misconfigured schedules all just mean "nothing to
// offer".
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	logger := getLogger(c)
	tenantID := c.Param("id")

	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "date query parameter is required (YYYY-MM-DD)")
		return
	}
	duration, err := strconv.Atoi(c.DefaultQuery("duration", "30"))
	if err != nil || duration <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "duration must be a positive number of minutes")
		return
	}

	slots, err := h.Service.GetAvailableSlots(c.Request.Context(), tenantID, date, duration)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Tenant not found")
			return
		}
		logger.Error("Failed to compute availability",
			zap.String("tenantId", tenantID), zap.String("date", date), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to compute availability")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":            date,
		"durationMinutes": duration,
		"slots":           slots,
	})
}
