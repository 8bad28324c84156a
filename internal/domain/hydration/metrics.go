package hydration

import "time"

// StartOfDay returns midnight at the beginning of t's calendar day, in t's
// location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NextMidnight returns the first midnight after t.
func NextMidnight(t time.Time) time.Time {
	return StartOfDay(t.Add(24 * time.Hour))
}

// sameDay reports whether a's instant falls on b's calendar day, judged
// in b's location. Persisted dates come back in UTC regardless of the
// zone they were logged in.
func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// TodaysTotal sums the volumes logged on now's calendar day.
func TodaysTotal(store *RecordStore, now time.Time) float64 {
	var sum float64
	for rec := range store.On(now) {
		sum += rec.Volume
	}
	return sum
}

// Remainder returns the volume still needed to hit the daily target.
// Negative means the target has been exceeded.
func Remainder(settings Settings, store *RecordStore, now time.Time) float64 {
	return settings.Target - TodaysTotal(store, now)
}

// PercentComplete returns today's progress as a fraction of the target.
func PercentComplete(settings Settings, store *RecordStore, now time.Time) float64 {
	if settings.Target <= 0 {
		return 0
	}
	return TodaysTotal(store, now) / settings.Target
}

// WeeklyTotals groups all records by calendar day and sums their volumes.
// Keys are local start-of-day timestamps; days without records are absent.
func WeeklyTotals(store *RecordStore) map[time.Time]float64 {
	totals := make(map[time.Time]float64)
	for _, rec := range store.All() {
		totals[StartOfDay(rec.Date.In(time.Local))] += rec.Volume
	}
	return totals
}
