package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bookwise/models"
)

func weekdaySchedule(weekday int, start, end string) models.WeeklyAvailability {
	return models.WeeklyAvailability{
		TimeZone: "UTC",
		Days: []models.DaySchedule{
			{Weekday: weekday, Enabled: true, Start: start, End: end},
		},
	}
}

func TestResolveDayOpenWindow(t *testing.T) {
	// 2025-06-02 is a Monday.
	avail := weekdaySchedule(1, "09:00", "12:00")

	window := ResolveDay("2025-06-02", avail)

	assert.True(t, window.Open)
	assert.Equal(t, 9*60, window.StartMin)
	assert.Equal(t, 12*60, window.EndMin)
	assert.Equal(t, "UTC", window.TimeZone)
}

func TestResolveDayClosedCases(t *testing.T) {
	monday := "2025-06-02"

	cases := []struct {
		name  string
		avail models.WeeklyAvailability
	}{
		{"disabled day", models.WeeklyAvailability{TimeZone: "UTC", Days: []models.DaySchedule{
			{Weekday: 1, Enabled: false, Start: "09:00", End: "12:00"},
		}}},
		{"no entry for weekday", weekdaySchedule(3, "09:00", "12:00")},
		{"end before start", weekdaySchedule(1, "12:00", "09:00")},
		{"end equals start", weekdaySchedule(1, "09:00", "09:00")},
		{"malformed start", weekdaySchedule(1, "9:00", "12:00")},
		{"malformed end", weekdaySchedule(1, "09:00", "25:00")},
		{"empty schedule", models.WeeklyAvailability{TimeZone: "UTC"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, ResolveDay(monday, tc.avail).Open)
		})
	}
}

func TestResolveDayBadDate(t *testing.T) {
	avail := weekdaySchedule(1, "09:00", "12:00")

	assert.False(t, ResolveDay("not-a-date", avail).Open)
	assert.False(t, ResolveDay("2025-13-40", avail).Open)
	assert.False(t, ResolveDay("", avail).Open)
}

func TestResolveDayWeekdayIsZoneIndependent(t *testing.T) {
	// 2025-06-02 is a Monday in every zone. Zones east of UTC+12 are
	// the ones a clock-based projection gets wrong: any UTC instant on
	// that Monday is already Tuesday in Apia or Kiritimati, so the
	// weekday must come from the date itself, not from a shifted clock.
	for _, zone := range []string{"Asia/Tokyo", "Pacific/Apia", "Pacific/Kiritimati", "Pacific/Tongatapu", "Pacific/Honolulu"} {
		avail := weekdaySchedule(1, "09:00", "17:00")
		avail.TimeZone = zone

		window := ResolveDay("2025-06-02", avail)

		assert.True(t, window.Open, zone)
		assert.Equal(t, zone, window.TimeZone)

		// Tuesday consults Tuesday's (absent) entry, in every zone.
		assert.False(t, ResolveDay("2025-06-03", avail).Open, zone)
	}
}

func TestResolveDayInvalidZoneFallsBackToUTC(t *testing.T) {
	avail := weekdaySchedule(1, "09:00", "12:00")
	avail.TimeZone = "Mars/Olympus_Mons"

	window := ResolveDay("2025-06-02", avail)

	assert.True(t, window.Open)
	assert.Equal(t, "UTC", window.TimeZone)
}

func TestResolveDayFirstWeekdayEntryWins(t *testing.T) {
	avail := models.WeeklyAvailability{
		TimeZone: "UTC",
		Days: []models.DaySchedule{
			{Weekday: 1, Enabled: true, Start: "09:00", End: "12:00"},
			{Weekday: 1, Enabled: true, Start: "13:00", End: "18:00"},
		},
	}

	window := ResolveDay("2025-06-02", avail)

	assert.True(t, window.Open)
	assert.Equal(t, 9*60, window.StartMin)
	assert.Equal(t, 12*60, window.EndMin)
}

func TestClockToMinutes(t *testing.T) {
	valid := map[string]int{
		"00:00": 0,
		"09:30": 570,
		"23:59": 1439,
	}
	for in, want := range valid {
		got, ok := ClockToMinutes(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"24:00", "12:60", "9:00", "09:0", "ab:cd", "09-00", "", "09:00 "} {
		_, ok := ClockToMinutes(in)
		assert.False(t, ok, in)
	}
}

func TestMinutesToClockZeroPadding(t *testing.T) {
	assert.Equal(t, "00:00", MinutesToClock(0))
	assert.Equal(t, "09:05", MinutesToClock(545))
	assert.Equal(t, "23:59", MinutesToClock(1439))
}
