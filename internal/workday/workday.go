// Package workday counts working days on the calendar. Weekends are
// excluded; holidays are deliberately not modeled.
package workday

import "time"

// Count returns the number of weekdays (Monday-Friday) in the closed
// interval [start, end], both endpoints included. Time of day is ignored.
// The caller must ensure end is not before start; the count for an
// inverted range is 0.
func Count(start, end time.Time) int {
	start = dateOnly(start)
	end = dateOnly(end)
	if end.Before(start) {
		return 0
	}

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			days++
		}
	}
	return days
}

// dateOnly normalizes to midnight UTC so two timestamps on the same
// calendar date always count identically.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
