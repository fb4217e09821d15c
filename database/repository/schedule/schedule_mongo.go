// File: database/repository/schedule/schedule_mongo.go
package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"bookwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoScheduleRepo) GetWeeklyAvailability(ctx context.Context, tenantID string) (*models.WeeklyAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": tenantID}
	projection := bson.M{"availability": 1, "_id": 0}

	var result struct {
		Availability models.WeeklyAvailability `bson:"availability"`
	}
	err := r.tenantColl.FindOne(ctx, filter, options.FindOne().SetProjection(projection)).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("tenant %s not found: %w", tenantID, err)
		}
		return nil, fmt.Errorf("failed to fetch schedule for tenant %s: %w", tenantID, err)
	}
	return &result.Availability, nil
}

func (r *mongoScheduleRepo) UpdateWeeklyAvailability(ctx context.Context, tenantID string, avail models.WeeklyAvailability) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": tenantID}
	update := bson.M{"$set": bson.M{
		"availability": avail,
		"updatedAt":    time.Now().UTC(),
	}}

	res, err := r.tenantColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update schedule for tenant %s: %w", tenantID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("tenant %s not found: %w", tenantID, mongo.ErrNoDocuments)
	}
	return nil
}
