package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// initialReminderDelay is how soon the catch-up reminder fires when the
// app starts and the last intake is already older than the interval.
const initialReminderDelay = 5 * time.Second

// Scheduler decides when the next drink reminder fires and tracks whether
// the time-to-drink condition is currently active or dismissed. Timer
// callbacks and user intents may arrive from different goroutines; the
// scheduler serializes them with its own lock and drives the engine flags
// through the StateSource.
type Scheduler struct {
	mu      sync.Mutex
	state   State
	gateway NotificationGateway
	source  StateSource
	logger  *slog.Logger
}

// NewScheduler creates a scheduler in the Idle state.
func NewScheduler(gateway NotificationGateway, source StateSource, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		state:   StateIdle,
		gateway: gateway,
		source:  source,
		logger:  logger,
	}
}

// State returns the current scheduler state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RecomputeInitial runs once at startup. When the most recent intake is
// already older than the reminder interval, the reminder is due now and an
// imminent catch-up notification is scheduled. Otherwise the scheduler
// stays Idle pending the natural schedule from the last intake.
func (s *Scheduler) RecomputeInitial(ctx context.Context, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	last := s.source.MostRecent()
	interval := s.source.Settings().ReminderInterval
	if !last.Date.Before(now.Add(-interval)) {
		return
	}

	fireAt := now.Add(initialReminderDelay)
	if err := s.gateway.Schedule(ctx, NotificationReminder, fireAt, InitialReminderTitle, InitialReminderBody); err != nil {
		s.logger.Warn("scheduling catch-up reminder failed", "error", err)
		return
	}
	s.state = StatePending
}

// OnIntakeRegistered recomputes the schedule after a new intake. Any
// pending or active reminder is cancelled and the condition cleared; when
// the target is already met for today no new reminder is scheduled.
func (s *Scheduler) OnIntakeRegistered(ctx context.Context, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gateway.Cancel(ctx, NotificationReminder); err != nil {
		s.logger.Warn("cancelling reminder failed", "error", err)
	}
	s.state = StateIdle
	s.source.SetReminderFlags(false, false)

	remainder := s.source.Remainder(now)
	if remainder <= 0 {
		return
	}

	last := s.source.MostRecent()
	interval := s.source.Settings().ReminderInterval
	fireAt := NextFireTime(last.Date, remainder, interval, now)
	body := fmt.Sprintf("%.0f mL to go before midnight", remainder)
	if err := s.gateway.Schedule(ctx, NotificationReminder, fireAt, ReminderTitle, body); err != nil {
		s.logger.Warn("scheduling reminder failed", "error", err, "fire_at", fireAt)
		return
	}
	s.state = StatePending
}

// OnReminderFired is invoked by the gateway when the scheduled alert's
// time is reached. Fires for reminders that are no longer pending (for
// example raced with a cancel) are ignored.
func (s *Scheduler) OnReminderFired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePending {
		return
	}
	s.state = StateActive
	s.source.SetReminderFlags(true, true)
}

// OnDismissed clears the condition on user action. It is idempotent and
// does not cancel any newly scheduled future reminder.
func (s *Scheduler) OnDismissed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.source.SetReminderFlags(false, false)
	if s.state == StateActive {
		s.state = StateDismissed
	}
}

// OnRecordsCleared cancels any outstanding reminder after the intake log
// was erased.
func (s *Scheduler) OnRecordsCleared(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gateway.Cancel(ctx, NotificationReminder); err != nil {
		s.logger.Warn("cancelling reminder failed", "error", err)
	}
	s.state = StateIdle
	s.source.SetReminderFlags(false, false)
}
