// File: services/availability/resolver.go
package availability

import (
	"time"

	"bookwise/models"
)

// DayWindow is the resolved opening window for one calendar date. When
// Open is false the remaining fields are zero except TimeZone, which
// always carries the zone the resolution was performed in.
type DayWindow struct {
	Open     bool
	StartMin int
	EndMin   int
	TimeZone string
}

// Location returns the zone the window was resolved in.
func (w DayWindow) Location() *time.Location {
	return loadLocation(w.TimeZone)
}

const dateLayout = "2006-01-02"

// ResolveDay determines whether a tenant is open on the given calendar
// date ("YYYY-MM-DD") and, if so, the open interval in minutes since
// local midnight.
//
// The weekday comes from the date string itself, never from a clock
// reading: a calendar date names the same weekday in every zone, so
// shifting an instant into the schedule's zone would consult the wrong
// day's entry for zones far enough from UTC (Pacific/Apia at UTC+13,
// Pacific/Kiritimati at UTC+14). The zone matters only for the today
// filter, not for weekday resolution. An unrecognized zone falls back
// to UTC. Misconfigured days (missing weekday entry, disabled, bad
// HH:MM, end <= start) and unparseable dates resolve to closed rather
// than erroring; a closed day is an expected state, not a failure.
func ResolveDay(date string, avail models.WeeklyAvailability) DayWindow {
	loc := loadLocation(avail.TimeZone)
	window := DayWindow{TimeZone: loc.String()}

	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return window
	}

	weekday := int(parsed.Weekday())

	day, ok := avail.DayFor(weekday)
	if !ok || !day.Enabled {
		return window
	}

	start, ok := ClockToMinutes(day.Start)
	if !ok {
		return window
	}
	end, ok := ClockToMinutes(day.End)
	if !ok || end <= start {
		return window
	}

	window.Open = true
	window.StartMin = start
	window.EndMin = end
	return window
}

// loadLocation resolves an IANA zone name, degrading to UTC so that
// availability stays computable with a partially invalid tenant config.
func loadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
