package hydration

// EventKind labels a completed state mutation.
type EventKind string

const (
	EventIntakeLogged     EventKind = "intake_logged"
	EventIntakeErased     EventKind = "intake_erased"
	EventRecordsCleared   EventKind = "records_cleared"
	EventRecordsPurged    EventKind = "records_purged"
	EventSettingsChanged  EventKind = "settings_changed"
	EventDefaultsRestored EventKind = "defaults_restored"
	EventReminderFlags    EventKind = "reminder_flags"
	EventStateRestored    EventKind = "state_restored"
)

// Event describes a mutation that has already been applied. State is the
// snapshot after the mutation.
type Event struct {
	Kind   EventKind
	Record *Record // set for intake events
	Purged int     // set for purge events
	State  Snapshot
}

// Subscriber reacts to change events. Subscribers run on the mutating
// goroutine while the engine lock is held and must not call back into the
// service; slow work belongs on the subscriber's own goroutine.
type Subscriber func(Event)
