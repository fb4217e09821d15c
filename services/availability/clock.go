// File: services/availability/clock.go
package availability

import "fmt"

// ClockToMinutes parses a strict zero-padded "HH:MM" string into
// minutes since midnight. Anything outside [00:00, 23:59] or not
// exactly five characters is rejected.
func ClockToMinutes(s string) (int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// MinutesToClock formats minutes since midnight as a zero-padded
// "HH:MM" string. Zero padding is load-bearing: slot times and the
// today-filter cutoff are compared lexicographically, which is only
// correct while both sides stay zero-padded 24-hour strings.
func MinutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
