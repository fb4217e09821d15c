// File: database/repository/tenant/interface.go
package tenantRepo

import (
	"context"

	"bookwise/database"
	"bookwise/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// TenantRepository defines methods for tenant data access, including the
// storage primitives the quota allocator builds on. The counter methods
// honor a Mongo session attached to ctx, so calls made inside
// WithTransaction all observe the same transaction snapshot.
type TenantRepository interface {
	// Create inserts a new tenant record.
	Create(ctx context.Context, tenant *models.Tenant) error
	// GetByID retrieves a tenant by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Tenant, error)
	// Delete removes a tenant record by its ID.
	Delete(ctx context.Context, id string) error

	// CountActiveClients computes the authoritative number of active
	// clients for a tenant from the clients collection.
	CountActiveClients(ctx context.Context, tenantID string) (int, error)
	// SetActiveClientCount unconditionally writes the cached counter.
	SetActiveClientCount(ctx context.Context, tenantID string, count int) error
	// CompareAndSwapActiveClientCount sets the cached counter to next
	// only if it still equals expected. Returns whether the swap applied.
	CompareAndSwapActiveClientCount(ctx context.Context, tenantID string, expected, next int) (bool, error)

	// WithTransaction runs fn inside a single Mongo transaction. The
	// context passed to fn carries the session; any error from fn aborts
	// the transaction. Transient conflicts surface as ErrTxnConflict.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type mongoTenantRepo struct {
	tenantColl *mongo.Collection
	clientColl *mongo.Collection
}

// NewMongoTenantRepo constructs a new MongoDB TenantRepository.
func NewMongoTenantRepo() TenantRepository {
	db := database.DB()
	return &mongoTenantRepo{
		tenantColl: db.Collection("tenants"),
		clientColl: db.Collection("clients"),
	}
}
