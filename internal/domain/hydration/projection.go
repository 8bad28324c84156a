package hydration

// Projection is the read-only view external consumers (UI, companion
// widget) observe. It is derived purely from the engine state.
type Projection struct {
	Target          float64 `json:"target"`
	TodaysTotal     float64 `json:"todaysTotal"`
	PercentComplete float64 `json:"percentComplete"`
	Accent          Accent  `json:"accent"`
	ReminderActive  bool    `json:"reminderActive"`
}
