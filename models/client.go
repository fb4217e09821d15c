package models

import "time"

// Client statuses. Active clients count against the tenant's plan quota.
const (
	ClientActive   = "active"
	ClientArchived = "archived"
)

// Client is a person a tenant serves. Status drives quota accounting:
// the authoritative active-client count is the number of client
// documents with Status == ClientActive.
type Client struct {
	ID        string    `bson:"id" json:"id"`
	TenantID  string    `bson:"tenantId" json:"tenantId"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
