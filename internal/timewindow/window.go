// Package timewindow computes the canonical day and week identifiers used by
// every reset-on-boundary entity. The identifiers are comparison keys, never
// durations: a stored boundary that no longer matches the current one means
// the cycle rolled over while nobody was watching.
package timewindow

// DayFormat is the canonical day identifier layout
const DayFormat = "2006-01-02"

// Today returns the current calendar day identifier in local time
func Today(clock Clock) string {
	return clock.Now().Format(DayFormat)
}

// WeekStart returns the day identifier of the most recent Monday (inclusive)
// in local time
func WeekStart(clock Clock) string {
	now := clock.Now()
	offset := (int(now.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return now.AddDate(0, 0, -offset).Format(DayFormat)
}

// Yesterday returns the day identifier of the previous calendar day
func Yesterday(clock Clock) string {
	return clock.Now().AddDate(0, 0, -1).Format(DayFormat)
}
