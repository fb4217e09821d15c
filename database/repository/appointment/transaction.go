// File: database/repository/appointment/transaction.go
package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"bookwise/models"
)

// ErrSlotTaken reports that a booked appointment overlapping the
// requested interval already exists, discovered inside the insert
// transaction. A concurrent request may have claimed the slot after the
// caller's own availability check.
var ErrSlotTaken = errors.New("slot already taken")

// CreateIfFree inserts the appointment only if no booked appointment
// strictly overlaps its interval. The conflict check and the insert run
// in one transaction, so two concurrent requests for overlapping
// intervals cannot both commit. Touching intervals do not conflict.
func (r *mongoAppointmentRepo) CreateIfFree(ctx context.Context, appt *models.Appointment) error {
	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	if appt.CreatedAt.IsZero() {
		appt.CreatedAt = time.Now().UTC()
	}

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}

		filter := bson.M{
			"tenantId": appt.TenantID,
			"date":     appt.Date,
			"status":   models.AppointmentBooked,
			"start":    bson.M{"$lt": appt.End},
			"end":      bson.M{"$gt": appt.Start},
		}
		n, err := r.coll.CountDocuments(sc, filter)
		if err != nil {
			_ = sc.AbortTransaction(sc)
			return fmt.Errorf("failed to check for conflicting appointments: %w", err)
		}
		if n > 0 {
			_ = sc.AbortTransaction(sc)
			return ErrSlotTaken
		}

		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			_ = sc.AbortTransaction(sc)
			return fmt.Errorf("failed to insert appointment: %w", err)
		}
		return sc.CommitTransaction(sc)
	})
}
