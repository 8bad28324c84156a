package hydration

import "time"

// RolloverHour and RolloverMinute fix the local wall-clock time of the
// daily rollover trigger, shortly after midnight.
const (
	RolloverHour   = 0
	RolloverMinute = 5
)

// RetentionCutoff computes the purge boundary for the retention window.
// The window is anchored to the next midnight rather than the current
// moment, so a record survives for retentionDays complete days.
func RetentionCutoff(now time.Time, retentionDays float64) time.Time {
	midnight := NextMidnight(now)
	window := time.Duration(retentionDays * 24 * float64(time.Hour))
	return midnight.Add(-window)
}

// NextRollover returns the next daily rollover trigger time after now.
func NextRollover(now time.Time) time.Time {
	y, m, d := now.Date()
	at := time.Date(y, m, d, RolloverHour, RolloverMinute, 0, 0, now.Location())
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}
