// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"

	"bookwise/database"
	"bookwise/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AppointmentRepository defines methods for appointment data access.
type AppointmentRepository interface {
	// CreateIfFree inserts a new appointment record unless a booked
	// appointment already overlaps its interval, in which case it
	// returns ErrSlotTaken. Check and insert are atomic.
	CreateIfFree(ctx context.Context, appt *models.Appointment) error
	// GetByID retrieves an appointment scoped to a tenant.
	GetByID(ctx context.Context, tenantID, apptID string) (*models.Appointment, error)
	// GetByTenantAndDate retrieves all appointments for a tenant on a date.
	GetByTenantAndDate(ctx context.Context, tenantID, date string) ([]models.Appointment, error)
	// GetBookedIntervals returns the intervals of booked appointments for
	// a tenant on a date, ordered by start time. Cancelled and completed
	// appointments never appear.
	GetBookedIntervals(ctx context.Context, tenantID, date string) ([]models.BookedInterval, error)
	// SetStatus updates the lifecycle status of an appointment.
	SetStatus(ctx context.Context, tenantID, apptID, status string) error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	return &mongoAppointmentRepo{
		coll: database.DB().Collection("appointments"),
	}
}
