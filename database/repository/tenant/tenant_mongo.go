// File: database/repository/tenant/tenant_mongo.go
package tenantRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"bookwise/models"
)

func (r *mongoTenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if tenant.ID == "" {
		tenant.ID = uuid.New().String()
	}
	if tenant.Plan == "" {
		tenant.Plan = models.PlanStarter
	}
	now := time.Now().UTC()
	if tenant.CreatedAt.IsZero() {
		tenant.CreatedAt = now
	}
	tenant.UpdatedAt = now

	if _, err := r.tenantColl.InsertOne(ctx, tenant); err != nil {
		return fmt.Errorf("failed to insert tenant: %w", err)
	}
	return nil
}

func (r *mongoTenantRepo) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tenant models.Tenant
	if err := r.tenantColl.FindOne(ctx, bson.M{"id": id}).Decode(&tenant); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("tenant %s not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to fetch tenant %s: %w", id, err)
	}
	return &tenant, nil
}

func (r *mongoTenantRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.tenantColl.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete tenant %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("tenant %s not found: %w", id, mongo.ErrNoDocuments)
	}
	return nil
}

// CountActiveClients is the ground truth the cached counter reconciles
// against. Inside WithTransaction the session on ctx pins the count to
// the transaction snapshot.
func (r *mongoTenantRepo) CountActiveClients(ctx context.Context, tenantID string) (int, error) {
	filter := bson.M{"tenantId": tenantID, "status": models.ClientActive}
	n, err := r.clientColl.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count active clients for tenant %s: %w", tenantID, err)
	}
	return int(n), nil
}

func (r *mongoTenantRepo) SetActiveClientCount(ctx context.Context, tenantID string, count int) error {
	update := bson.M{"$set": bson.M{"activeClientCount": count}}
	res, err := r.tenantColl.UpdateOne(ctx, bson.M{"id": tenantID}, update)
	if err != nil {
		return fmt.Errorf("failed to set active client count for tenant %s: %w", tenantID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("tenant %s not found: %w", tenantID, mongo.ErrNoDocuments)
	}
	return nil
}

// CompareAndSwapActiveClientCount folds the version check into the
// filter: the update matches only while the stored counter still holds
// the expected value, so a lost race shows up as ModifiedCount == 0.
func (r *mongoTenantRepo) CompareAndSwapActiveClientCount(ctx context.Context, tenantID string, expected, next int) (bool, error) {
	filter := bson.M{"id": tenantID, "activeClientCount": expected}
	update := bson.M{"$set": bson.M{"activeClientCount": next}}

	res, err := r.tenantColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to swap active client count for tenant %s: %w", tenantID, err)
	}
	return res.ModifiedCount == 1, nil
}
