// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"

	"bookwise/database"
	"bookwise/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ScheduleRepository provides access to a tenant's weekly availability
// document. The schedule is embedded in the tenant record, so reads and
// writes address the tenants collection.
type ScheduleRepository interface {
	// GetWeeklyAvailability retrieves the weekly schedule for a tenant.
	GetWeeklyAvailability(ctx context.Context, tenantID string) (*models.WeeklyAvailability, error)
	// UpdateWeeklyAvailability replaces the weekly schedule for a tenant.
	UpdateWeeklyAvailability(ctx context.Context, tenantID string, avail models.WeeklyAvailability) error
}

type mongoScheduleRepo struct {
	tenantColl *mongo.Collection
}

// NewMongoScheduleRepo constructs a new MongoDB ScheduleRepository.
func NewMongoScheduleRepo() ScheduleRepository {
	return &mongoScheduleRepo{
		tenantColl: database.DB().Collection("tenants"),
	}
}
