package models

// DaySchedule configures one weekday of a tenant's recurring schedule.
// Weekday follows time.Weekday numbering (0 = Sunday). Start and End are
// zero-padded "HH:MM" local clock times; a day is only considered open
// when Enabled is set and Start parses strictly before End.
type DaySchedule struct {
	Weekday int    `bson:"weekday" json:"weekday" binding:"min=0,max=6"`
	Enabled bool   `bson:"enabled" json:"enabled"`
	Start   string `bson:"start" json:"start"`
	End     string `bson:"end" json:"end"`
}

// WeeklyAvailability is a tenant's recurring weekly schedule. TimeZone is
// an IANA zone name; computations fall back to UTC when it is absent or
// unrecognized. At most one DaySchedule per weekday is consulted (first
// match wins).
type WeeklyAvailability struct {
	TimeZone string        `bson:"timeZone" json:"timeZone"`
	Days     []DaySchedule `bson:"days" json:"days"`
}

// DayFor returns the first schedule entry for the given weekday.
func (w WeeklyAvailability) DayFor(weekday int) (DaySchedule, bool) {
	for _, d := range w.Days {
		if d.Weekday == weekday {
			return d, true
		}
	}
	return DaySchedule{}, false
}
