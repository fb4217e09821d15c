// File: database/repository/appointment/appointment_mongo.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookwise/models"
)

func (r *mongoAppointmentRepo) GetByID(ctx context.Context, tenantID, apptID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": apptID, "tenantId": tenantID}
	var appt models.Appointment
	if err := r.coll.FindOne(ctx, filter).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("appointment %s not found: %w", apptID, err)
		}
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", apptID, err)
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) GetByTenantAndDate(ctx context.Context, tenantID, date string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"tenantId": tenantID, "date": date}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.M{"start": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments for tenant %s on %s: %w", tenantID, date, err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

// GetBookedIntervals projects booked appointments down to the interval
// view the slot engine consumes.
func (r *mongoAppointmentRepo) GetBookedIntervals(ctx context.Context, tenantID, date string) ([]models.BookedInterval, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"tenantId": tenantID,
		"date":     date,
		"status":   models.AppointmentBooked,
	}
	opts := options.Find().
		SetProjection(bson.M{"start": 1, "end": 1, "_id": 0}).
		SetSort(bson.M{"start": 1})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booked intervals for tenant %s on %s: %w", tenantID, date, err)
	}
	defer cursor.Close(ctx)

	var intervals []models.BookedInterval
	if err := cursor.All(ctx, &intervals); err != nil {
		return nil, fmt.Errorf("failed to decode booked intervals: %w", err)
	}
	return intervals, nil
}

func (r *mongoAppointmentRepo) SetStatus(ctx context.Context, tenantID, apptID, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": apptID, "tenantId": tenantID}
	update := bson.M{"$set": bson.M{"status": status}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update status for appointment %s: %w", apptID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("appointment %s not found: %w", apptID, mongo.ErrNoDocuments)
	}
	return nil
}
