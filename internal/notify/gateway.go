// Package notify implements the notification gateway with in-process
// timers and pluggable delivery backends.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrClosed indicates the gateway has shut down and refuses new schedules.
var ErrClosed = errors.New("notification gateway closed")

// Notifier delivers a notification to the user.
type Notifier interface {
	Notify(title, body string) error
}

// timerEntry pairs a timer with the generation it was armed under, so a
// callback that outlives a Stop can be told apart from the current timer.
type timerEntry struct {
	timer *time.Timer
	gen   uint64
}

// TimerGateway schedules named alerts on in-process timers. Scheduling an
// id that already has a pending timer replaces it; a fire time in the past
// fires immediately. Cancel is idempotent.
type TimerGateway struct {
	mu       sync.Mutex
	timers   map[string]timerEntry
	gen      uint64
	notifier Notifier
	handler  func(id string)
	logger   *slog.Logger
	closed   bool
}

// NewTimerGateway creates a gateway delivering through the given notifier.
func NewTimerGateway(notifier Notifier, logger *slog.Logger) *TimerGateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &TimerGateway{
		timers:   make(map[string]timerEntry),
		notifier: notifier,
		logger:   logger,
	}
}

// OnFire registers the callback invoked when an alert's time is reached.
// Register it during wiring, before anything is scheduled.
func (g *TimerGateway) OnFire(fn func(id string)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.handler = fn
}

// Schedule arms a timer for the alert. The callback and delivery run on
// the timer goroutine.
func (g *TimerGateway) Schedule(_ context.Context, id string, fireAt time.Time, title, body string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return ErrClosed
	}
	if existing, ok := g.timers[id]; ok {
		existing.timer.Stop()
	}

	delay := time.Until(fireAt)
	if delay < 0 {
		delay = 0
	}
	g.gen++
	gen := g.gen
	timer := time.AfterFunc(delay, func() {
		g.fire(id, gen, title, body)
	})
	g.timers[id] = timerEntry{timer: timer, gen: gen}
	return nil
}

// Cancel disarms the alert's timer. Cancelling an unknown, already-fired
// or already-cancelled id is a no-op.
func (g *TimerGateway) Cancel(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if entry, ok := g.timers[id]; ok {
		entry.timer.Stop()
		delete(g.timers, id)
	}
	return nil
}

// Close stops every pending timer and refuses further schedules.
func (g *TimerGateway) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.closed = true
	for id, entry := range g.timers {
		entry.timer.Stop()
		delete(g.timers, id)
	}
}

func (g *TimerGateway) fire(id string, gen uint64, title, body string) {
	g.mu.Lock()
	entry, ok := g.timers[id]
	// A Stop that loses the race leaves the old callback running; only
	// the generation currently registered for the id may deliver.
	if g.closed || !ok || entry.gen != gen {
		g.mu.Unlock()
		return
	}
	delete(g.timers, id)
	handler := g.handler
	g.mu.Unlock()

	if g.notifier != nil {
		if err := g.notifier.Notify(title, body); err != nil {
			g.logger.Warn("notification delivery failed", "id", id, "error", err)
		}
	}
	if handler != nil {
		handler(id)
	}
}
