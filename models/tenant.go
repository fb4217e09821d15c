package models

import "time"

// Tenant is a service provider account. Availability is embedded so the
// schedule travels with the tenant document, and ActiveClientCount is
// the cached seat counter the quota allocator maintains.
//
// ActiveClientCount may transiently over-report (a crash between a
// committed increment and the client write it guarded), but must never
// under-report the true number of active clients; the allocator
// reconciles it upward from the clients collection before every
// admission decision. No other component writes this field.
type Tenant struct {
	ID                string             `bson:"id" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	Plan              string             `bson:"plan" json:"plan"`
	Availability      WeeklyAvailability `bson:"availability" json:"availability"`
	ActiveClientCount int                `bson:"activeClientCount" json:"activeClientCount"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
