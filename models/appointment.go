package models

import "time"

// Appointment statuses. Only booked appointments constrain availability.
const (
	AppointmentBooked    = "booked"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

// Appointment represents a confirmed appointment record.
type Appointment struct {
	ID        string    `bson:"id" json:"id"`                 // Unique appointment identifier (UUID)
	TenantID  string    `bson:"tenantId" json:"tenantId"`     // Tenant the appointment belongs to
	ClientID  string    `bson:"clientId" json:"clientId"`     // Client the appointment was made for
	Date      string    `bson:"date" json:"date"`             // Appointment date in "YYYY-MM-DD" format
	Start     int       `bson:"start" json:"start"`           // Start time (minutes from midnight, tenant-local)
	End       int       `bson:"end" json:"end"`               // End time (minutes from midnight, tenant-local)
	Status    string    `bson:"status" json:"status"`         // "booked", "cancelled" or "completed"
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// BookedInterval is the read-only view of an appointment the slot engine
// consumes: a half-open [Start, End) interval in tenant-local minutes
// since midnight.
type BookedInterval struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}
