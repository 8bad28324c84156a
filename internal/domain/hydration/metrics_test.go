package hydration_test

import (
	"testing"
	"time"

	"github.com/quenchd/quench/internal/domain/hydration"
	"github.com/stretchr/testify/require"
)

func TestTodaysTotal_Scenario(t *testing.T) {
	store := hydration.NewRecordStore()
	settings := hydration.DefaultSettings()
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)
	now := day.Add(10 * time.Hour)

	require.NoError(t, store.Append(mustRecord(t, day.Add(8*time.Hour), 500)))
	require.NoError(t, store.Append(mustRecord(t, day.Add(10*time.Hour), 500)))

	require.Equal(t, 1000.0, hydration.TodaysTotal(store, now))
	require.Equal(t, 2000.0, hydration.Remainder(settings, store, now))
	require.InDelta(t, 0.3333, hydration.PercentComplete(settings, store, now), 0.0001)
}

func TestTodaysTotal_InsertionOrderIndependent(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)
	now := day.Add(12 * time.Hour)
	offsets := []time.Duration{
		9 * time.Hour, 7 * time.Hour, 11 * time.Hour, 8 * time.Hour,
	}

	forward := hydration.NewRecordStore()
	backward := hydration.NewRecordStore()
	for _, off := range offsets {
		require.NoError(t, forward.Append(mustRecord(t, day.Add(off), 200)))
	}
	for i := len(offsets) - 1; i >= 0; i-- {
		require.NoError(t, backward.Append(mustRecord(t, day.Add(offsets[i]), 200)))
	}

	require.Equal(t, hydration.TodaysTotal(forward, now), hydration.TodaysTotal(backward, now))
	require.Equal(t, 800.0, hydration.TodaysTotal(forward, now))
}

func TestTodaysTotal_IgnoresOtherDays(t *testing.T) {
	store := hydration.NewRecordStore()
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)

	require.NoError(t, store.Append(mustRecord(t, day.Add(-time.Hour), 999)))
	require.NoError(t, store.Append(mustRecord(t, day.Add(10*time.Hour), 500)))
	require.NoError(t, store.Append(mustRecord(t, day.Add(25*time.Hour), 999)))

	require.Equal(t, 500.0, hydration.TodaysTotal(store, day.Add(12*time.Hour)))
}

func TestTodaysTotal_StoredZoneIrrelevant(t *testing.T) {
	// Persisted dates come back in UTC; what matters is whether the
	// instant falls inside now's calendar day.
	store := hydration.NewRecordStore()
	loc := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, loc)

	store.Replace([]hydration.Record{
		// 2026-08-30 08:00 in UTC+10.
		{ID: "today", Date: time.Date(2026, 8, 29, 22, 0, 0, 0, time.UTC), Volume: 500},
		// 2026-08-31 06:00 in UTC+10, despite the UTC day matching now's.
		{ID: "tomorrow", Date: time.Date(2026, 8, 30, 20, 0, 0, 0, time.UTC), Volume: 999},
	})

	require.Equal(t, 500.0, hydration.TodaysTotal(store, now))
	require.Equal(t, 2500.0, hydration.Remainder(hydration.DefaultSettings(), store, now))
}

func TestRemainder_Negative(t *testing.T) {
	store := hydration.NewRecordStore()
	settings := hydration.DefaultSettings()
	require.NoError(t, settings.SetTarget(1000))
	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.Local)

	require.NoError(t, store.Append(mustRecord(t, now.Add(-time.Hour), 800)))
	require.NoError(t, store.Append(mustRecord(t, now, 500)))

	require.Equal(t, -300.0, hydration.Remainder(settings, store, now))
	require.InDelta(t, 1.3, hydration.PercentComplete(settings, store, now), 0.0001)
}

func TestWeeklyTotals(t *testing.T) {
	store := hydration.NewRecordStore()
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.Local)

	require.NoError(t, store.Append(mustRecord(t, monday.Add(8*time.Hour), 300)))
	require.NoError(t, store.Append(mustRecord(t, monday.Add(18*time.Hour), 400)))
	require.NoError(t, store.Append(mustRecord(t, monday.AddDate(0, 0, 3).Add(9*time.Hour), 250)))

	totals := hydration.WeeklyTotals(store)
	require.Len(t, totals, 2)
	require.Equal(t, 700.0, totals[monday])
	require.Equal(t, 250.0, totals[monday.AddDate(0, 0, 3)])
	// Days without records are absent, not zero-filled.
	_, ok := totals[monday.AddDate(0, 0, 1)]
	require.False(t, ok)
}

func TestWeeklyTotals_GroupsByInstant(t *testing.T) {
	// The same pair of instants must land in one bucket no matter which
	// zone their dates carry.
	store := hydration.NewRecordStore()
	loc := time.FixedZone("UTC+10", 10*60*60)
	base := time.Date(2026, 8, 29, 20, 0, 0, 0, time.UTC)

	store.Replace([]hydration.Record{
		{ID: "a", Date: base, Volume: 200},
		{ID: "b", Date: base.Add(time.Nanosecond).In(loc), Volume: 300},
	})

	totals := hydration.WeeklyTotals(store)
	require.Len(t, totals, 1)
	for _, total := range totals {
		require.Equal(t, 500.0, total)
	}
}

func TestWeeklyTotals_Empty(t *testing.T) {
	totals := hydration.WeeklyTotals(hydration.NewRecordStore())
	require.Empty(t, totals)
}
