package reminder

// State is the scheduler's position in the reminder lifecycle.
type State string

const (
	// StateIdle means no reminder is pending or active.
	StateIdle State = "IDLE"
	// StatePending means a future fire time is scheduled with the gateway.
	StatePending State = "PENDING"
	// StateActive means the fire time elapsed and the drink-reminder
	// condition is true.
	StateActive State = "ACTIVE"
	// StateDismissed means the user cleared the condition; the next
	// intake-triggered recompute returns the scheduler to Idle.
	StateDismissed State = "DISMISSED"
)

// Logical notification identities used with the gateway.
const (
	NotificationReminder = "reminder"
	NotificationRollover = "rollover"
)

// Notification copy.
const (
	ReminderTitle = "Take a Sip"

	InitialReminderTitle = "Time to Drink"
	InitialReminderBody  = "Remember to stay hydrated"

	RolloverTitle = "Reset Day"
	RolloverBody  = "Starting new day"
)
