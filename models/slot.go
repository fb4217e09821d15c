package models

// Slot is a bookable time window offered to clients. StartTime and
// EndTime are zero-padded "HH:MM" strings in the tenant's time zone.
// Slots are computed on demand and never persisted.
type Slot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}
