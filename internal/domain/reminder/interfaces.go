package reminder

import (
	"context"
	"time"

	"github.com/quenchd/quench/internal/domain/hydration"
)

// NotificationGateway schedules and cancels named, timed alerts. A fire
// time in the past must be treated as "fire immediately"; cancelling an
// unknown or already-fired id is a no-op.
type NotificationGateway interface {
	Schedule(ctx context.Context, id string, fireAt time.Time, title, body string) error
	Cancel(ctx context.Context, id string) error
}

// StateSource exposes the slice of engine state the scheduler plans from
// and the reminder flags it drives. Implemented by the hydration service.
type StateSource interface {
	MostRecent() hydration.Record
	Remainder(now time.Time) float64
	Settings() hydration.Settings
	SetReminderFlags(active, visible bool)
}
