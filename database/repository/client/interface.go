// File: database/repository/client/interface.go
package clientRepo

import (
	"context"

	"bookwise/database"
	"bookwise/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ClientRepository defines methods for client data access.
type ClientRepository interface {
	// Create inserts a new client record.
	Create(ctx context.Context, client *models.Client) error
	// GetByID retrieves a client scoped to a tenant.
	GetByID(ctx context.Context, tenantID, clientID string) (*models.Client, error)
	// ListByTenant retrieves a tenant's clients, optionally filtered by
	// status ("" means all).
	ListByTenant(ctx context.Context, tenantID, status string) ([]models.Client, error)
	// SetStatus updates the lifecycle status of a client.
	SetStatus(ctx context.Context, tenantID, clientID, status string) error
	// Delete removes a client record.
	Delete(ctx context.Context, tenantID, clientID string) error
}

type mongoClientRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo constructs a new MongoDB ClientRepository.
func NewMongoClientRepo() ClientRepository {
	return &mongoClientRepo{
		coll: database.DB().Collection("clients"),
	}
}
