package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu     sync.Mutex
	titles []string
}

func (n *recordingNotifier) Notify(title, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.titles = append(n.titles, title)
	return nil
}

func (n *recordingNotifier) Titles() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.titles...)
}

func waitForFire(t *testing.T, fired <-chan string, want string) {
	t.Helper()
	select {
	case id := <-fired:
		require.Equal(t, want, id)
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %q to fire", want)
	}
}

func TestTimerGateway_PastFireTimeFiresImmediately(t *testing.T) {
	notifier := &recordingNotifier{}
	gateway := NewTimerGateway(notifier, nil)
	defer gateway.Close()

	fired := make(chan string, 1)
	gateway.OnFire(func(id string) { fired <- id })

	err := gateway.Schedule(context.Background(), "reminder", time.Now().Add(-time.Hour), "Take a Sip", "")
	require.NoError(t, err)

	waitForFire(t, fired, "reminder")
	require.Equal(t, []string{"Take a Sip"}, notifier.Titles())
}

func TestTimerGateway_CancelIdempotent(t *testing.T) {
	gateway := NewTimerGateway(&recordingNotifier{}, nil)
	defer gateway.Close()

	ctx := context.Background()
	require.NoError(t, gateway.Schedule(ctx, "reminder", time.Now().Add(time.Hour), "t", "b"))
	require.NoError(t, gateway.Cancel(ctx, "reminder"))
	require.NoError(t, gateway.Cancel(ctx, "reminder"))
	require.NoError(t, gateway.Cancel(ctx, "never-scheduled"))
}

func TestTimerGateway_RescheduleReplaces(t *testing.T) {
	gateway := NewTimerGateway(&recordingNotifier{}, nil)
	defer gateway.Close()

	fired := make(chan string, 2)
	gateway.OnFire(func(id string) { fired <- id })

	ctx := context.Background()
	require.NoError(t, gateway.Schedule(ctx, "reminder", time.Now().Add(time.Hour), "slow", ""))
	require.NoError(t, gateway.Schedule(ctx, "reminder", time.Now(), "fast", ""))

	waitForFire(t, fired, "reminder")
	select {
	case <-fired:
		t.Fatal("replaced timer fired as well")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestTimerGateway_StaleCallbackIgnoredAfterReschedule(t *testing.T) {
	// A callback already in flight when its timer is stopped and the id
	// rescheduled must neither deliver nor unregister the replacement.
	notifier := &recordingNotifier{}
	gateway := NewTimerGateway(notifier, nil)
	defer gateway.Close()

	fired := make(chan string, 2)
	gateway.OnFire(func(id string) { fired <- id })

	ctx := context.Background()
	require.NoError(t, gateway.Schedule(ctx, "reminder", time.Now().Add(time.Hour), "first", ""))
	gateway.mu.Lock()
	staleGen := gateway.timers["reminder"].gen
	gateway.mu.Unlock()

	require.NoError(t, gateway.Cancel(ctx, "reminder"))
	require.NoError(t, gateway.Schedule(ctx, "reminder", time.Now().Add(time.Hour), "second", ""))

	gateway.fire("reminder", staleGen, "first", "")

	select {
	case <-fired:
		t.Fatal("stale timer callback delivered")
	case <-time.After(100 * time.Millisecond):
	}
	require.Empty(t, notifier.Titles())

	gateway.mu.Lock()
	_, ok := gateway.timers["reminder"]
	gateway.mu.Unlock()
	require.True(t, ok, "replacement timer was unregistered")
}

func TestTimerGateway_ClosedRefusesSchedules(t *testing.T) {
	gateway := NewTimerGateway(&recordingNotifier{}, nil)
	gateway.Close()

	err := gateway.Schedule(context.Background(), "reminder", time.Now(), "t", "b")
	require.ErrorIs(t, err, ErrClosed)
}

func TestTimerGateway_CloseStopsPendingTimers(t *testing.T) {
	gateway := NewTimerGateway(&recordingNotifier{}, nil)

	fired := make(chan string, 1)
	gateway.OnFire(func(id string) { fired <- id })

	require.NoError(t, gateway.Schedule(context.Background(), "reminder", time.Now().Add(50*time.Millisecond), "t", "b"))
	gateway.Close()

	select {
	case <-fired:
		t.Fatal("timer fired after close")
	case <-time.After(200 * time.Millisecond):
	}
}
