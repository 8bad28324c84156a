package reminder_test

import (
	"testing"
	"time"

	"github.com/quenchd/quench/internal/domain/reminder"
	"github.com/stretchr/testify/require"
)

func TestNextFireTime_CappedByInterval(t *testing.T) {
	// 5 h until midnight with 500 mL to go: the ideal spacing is
	// 250*18000/500 = 9000 s, slower than the configured hour, so the
	// interval caps it.
	now := time.Date(2026, 8, 30, 19, 0, 0, 0, time.Local)
	last := now.Add(-10 * time.Minute)

	fireAt := reminder.NextFireTime(last, 500, time.Hour, now)
	require.Equal(t, last.Add(time.Hour), fireAt)
}

func TestNextFireTime_PacesFasterNearMidnight(t *testing.T) {
	// 2 h until midnight with 2000 mL to go: 250*7200/2000 = 900 s,
	// well under the interval.
	now := time.Date(2026, 8, 30, 22, 0, 0, 0, time.Local)
	last := now

	fireAt := reminder.NextFireTime(last, 2000, time.Hour, now)
	require.Equal(t, last.Add(900*time.Second), fireAt)
}

func TestNextFireTime_AnchoredAtLastIntake(t *testing.T) {
	// An old last intake can put the fire time in the past; the gateway
	// treats that as "fire immediately".
	now := time.Date(2026, 8, 30, 22, 0, 0, 0, time.Local)
	last := now.Add(-2 * time.Hour)

	fireAt := reminder.NextFireTime(last, 2000, time.Hour, now)
	require.Equal(t, last.Add(900*time.Second), fireAt)
	require.True(t, fireAt.Before(now))
}
