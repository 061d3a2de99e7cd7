// Package dayspan computes the time boundaries of the fixed popularity
// windows. All day boundaries are local midnights; the "yesterday" window is
// half-open: [yesterday 00:00, today 00:00).
package dayspan

import "time"

const (
	Today      = "today"
	Yesterday  = "yesterday"
	Last7Days  = "last7days"
	Last30Days = "last30days"
	AllTime    = "all_time"
)

// Midnight returns the most recent local midnight at or before t.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Bounds returns the [start, end) window for a period relative to now. A zero
// end means the window is unbounded above. ok is false for unknown periods.
func Bounds(period string, now time.Time) (start, end time.Time, ok bool) {
	switch period {
	case Today:
		return Midnight(now), time.Time{}, true
	case Yesterday:
		midnight := Midnight(now)
		return midnight.AddDate(0, 0, -1), midnight, true
	case Last7Days:
		return now.AddDate(0, 0, -7), time.Time{}, true
	case Last30Days:
		return now.AddDate(0, 0, -30), time.Time{}, true
	case AllTime:
		return time.Time{}, time.Time{}, true
	}
	return time.Time{}, time.Time{}, false
}

// Contains reports whether ts falls inside the [start, end) window produced
// by Bounds.
func Contains(ts, start, end time.Time) bool {
	if ts.Before(start) {
		return false
	}
	if !end.IsZero() && !ts.Before(end) {
		return false
	}
	return true
}
