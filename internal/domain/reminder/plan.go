package reminder

import (
	"time"

	"github.com/quenchd/quench/internal/domain/hydration"
)

// AverageSipVolume is the assumed intake per reminder cycle, in mL.
const AverageSipVolume = 250.0

// NextFireTime computes when the next drink reminder should fire. The
// ideal spacing would finish the remaining deficit in 250 mL sips exactly
// at midnight; the user-configured interval caps it so reminders never
// come slower than requested. The result is anchored at the most recent
// intake and may lie in the past, which the gateway treats as "fire
// immediately". remainder must be positive.
func NextFireTime(lastIntake time.Time, remainder float64, interval time.Duration, now time.Time) time.Time {
	untilMidnight := hydration.NextMidnight(now).Sub(now)
	ideal := time.Duration(AverageSipVolume / remainder * float64(untilMidnight))
	fireIn := ideal
	if interval < fireIn {
		fireIn = interval
	}
	return lastIntake.Add(fireIn)
}
