package hydration_test

import (
	"testing"
	"time"

	"github.com/quenchd/quench/internal/domain/hydration"
	"github.com/stretchr/testify/require"
)

func TestRetentionCutoff_AnchoredToNextMidnight(t *testing.T) {
	// At 10:00 on day D with a 7-day window, the cutoff is midnight of
	// D-6: the window counts complete days back from the next midnight.
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)
	cutoff := hydration.RetentionCutoff(now, 7)
	require.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.Local), cutoff)
}

func TestRetentionCutoff_PurgeBoundaries(t *testing.T) {
	store := hydration.NewRecordStore()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)

	purged := mustRecord(t, time.Date(2026, 8, 22, 23, 59, 0, 0, time.Local), 250)
	retained := mustRecord(t, time.Date(2026, 8, 24, 0, 1, 0, 0, time.Local), 300)
	require.NoError(t, store.Append(purged))
	require.NoError(t, store.Append(retained))

	removed := store.PurgeOlderThan(hydration.RetentionCutoff(now, 7))
	require.Equal(t, 1, removed)
	require.Equal(t, []hydration.Record{retained}, store.All())
}

func TestNextRollover(t *testing.T) {
	loc := time.Local

	// Before the trigger time: fires later the same day.
	now := time.Date(2026, 8, 30, 0, 1, 0, 0, loc)
	require.Equal(t, time.Date(2026, 8, 30, 0, 5, 0, 0, loc), hydration.NextRollover(now))

	// After the trigger time: fires tomorrow.
	now = time.Date(2026, 8, 30, 10, 0, 0, 0, loc)
	require.Equal(t, time.Date(2026, 8, 31, 0, 5, 0, 0, loc), hydration.NextRollover(now))

	// Exactly at the trigger time: fires tomorrow, not immediately again.
	now = time.Date(2026, 8, 30, 0, 5, 0, 0, loc)
	require.Equal(t, time.Date(2026, 8, 31, 0, 5, 0, 0, loc), hydration.NextRollover(now))
}

func TestStartOfDayAndNextMidnight(t *testing.T) {
	now := time.Date(2026, 8, 30, 19, 42, 13, 500, time.Local)
	require.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local), hydration.StartOfDay(now))
	require.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local), hydration.NextMidnight(now))
}
