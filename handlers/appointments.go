package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"bookwise/services/booking"
	"bookwise/utils"
)

// AppointmentHandler manages appointment booking endpoints.
type AppointmentHandler struct {
	Service booking.Service
}

func NewAppointmentHandler(svc booking.Service) *AppointmentHandler {
	return &AppointmentHandler{Service: svc}
}

// CreateAppointment handles POST /api/tenants/:id/appointments.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	logger := getLogger(c)
	tenantID := c.Param("id")

	var input booking.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: " + err.Error())
		return
	}

	appt, err := h.Service.BookAppointment(c.Request.Context(), tenantID, input)
	if err != nil {
		if errors.Is(err, booking.ErrSlotUnavailable) {
			utils.JSONError(c, http.StatusConflict, err.Error())
			return
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Tenant not found")
			return
		}
		logger.Error("Failed to book appointment", zap.String("tenantId", tenantID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to book appointment")
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// CancelAppointment handles POST /api/tenants/:id/appointments/:apptID/cancel.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	logger := getLogger(c)
	tenantID := c.Param("id")
	apptID := c.Param("apptID")

	if err := h.Service.CancelAppointment(c.Request.Context(), tenantID, apptID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Appointment not found")
			return
		}
		logger.Error("Failed to cancel appointment", zap.String("apptId", apptID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to cancel appointment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// ListAppointments handles GET /api/tenants/:id/appointments?date=YYYY-MM-DD.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	logger := getLogger(c)
	tenantID := c.Param("id")

	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "date query parameter is required (YYYY-MM-DD)")
		return
	}

	appts, err := h.Service.ListAppointments(c.Request.Context(), tenantID, date)
	if err != nil {
		logger.Error("Failed to list appointments", zap.String("tenantId", tenantID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list appointments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}
