package domain

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// CivilDate drops the clock and zone from t, returning midnight UTC of the
// same calendar day.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysInRange returns every calendar date from start through end, inclusive.
// It returns nil when end is before start.
func DaysInRange(start, end time.Time) []time.Time {
	start, end = CivilDate(start), CivilDate(end)
	if end.Before(start) {
		return nil
	}
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
