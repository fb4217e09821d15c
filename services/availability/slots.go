// File: services/availability/slots.go
package availability

import "bookwise/models"

// Overlap policy: a candidate slot conflicts with a booked interval only
// when the two strictly overlap as open intervals. Slots that merely
// touch a booking at an endpoint are still offered, so back-to-back
// appointments are legal. Swapping either comparison for <= would
// silently thin out booking density, so the test lives here as a named
// function rather than inline.
func strictlyOverlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// GenerateSlots partitions the open interval [openStart, openEnd) into
// candidate slots of exactly durationMinutes, walking a fixed grid from
// openStart, and drops any candidate that strictly overlaps a booked
// interval. Booked intervals never shift the grid: a booking removes
// the grid slots it touches, keeping slot boundaries stable across
// requests as bookings come and go.
//
// An empty or inverted window and a non-positive duration yield an
// empty list; no availability is a normal outcome, never an error.
// Surviving slots are returned in ascending order as zero-padded
// "HH:MM" pairs.
func GenerateSlots(openStart, openEnd, durationMinutes int, booked []models.BookedInterval) []models.Slot {
	slots := []models.Slot{}
	if durationMinutes <= 0 || openEnd <= openStart {
		return slots
	}

	for t := openStart; t+durationMinutes <= openEnd; t += durationMinutes {
		if conflicts(t, t+durationMinutes, booked) {
			continue
		}
		slots = append(slots, models.Slot{
			StartTime: MinutesToClock(t),
			EndTime:   MinutesToClock(t + durationMinutes),
		})
	}
	return slots
}

func conflicts(start, end int, booked []models.BookedInterval) bool {
	for _, b := range booked {
		if strictlyOverlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}
