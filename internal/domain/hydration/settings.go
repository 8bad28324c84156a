package hydration

import "time"

// Settings holds the user-tunable knobs of the engine.
type Settings struct {
	Target           float64 // mL per day
	ReminderInterval time.Duration
	Accent           Accent
	RetentionDays    float64
}

// DefaultSettings returns the factory configuration.
func DefaultSettings() Settings {
	return Settings{
		Target:           DefaultTarget,
		ReminderInterval: DefaultReminderInterval,
		Accent:           DefaultAccent,
		RetentionDays:    DefaultRetentionDays,
	}
}

// SetTarget updates the daily target.
func (s *Settings) SetTarget(v float64) error {
	if v <= 0 {
		return ErrInvalidTarget
	}
	s.Target = v
	return nil
}

// SetReminderInterval clamps the interval to its allowed range and rounds
// to the nearest whole second. The applied value is returned.
func (s *Settings) SetReminderInterval(d time.Duration) time.Duration {
	if d < MinReminderInterval {
		d = MinReminderInterval
	}
	if d > MaxReminderInterval {
		d = MaxReminderInterval
	}
	s.ReminderInterval = d.Round(time.Second)
	return s.ReminderInterval
}

// SetAccent updates the accent color.
func (s *Settings) SetAccent(a Accent) error {
	if _, err := ParseAccent(string(a)); err != nil {
		return err
	}
	s.Accent = a
	return nil
}

// SetRetentionDays updates the retention window.
func (s *Settings) SetRetentionDays(v float64) error {
	if v <= 0 {
		return ErrInvalidRetention
	}
	s.RetentionDays = v
	return nil
}

// RestoreDefaults resets target, accent and reminder interval to factory
// values. The retention window is deliberately left untouched.
func (s *Settings) RestoreDefaults() {
	s.Target = DefaultTarget
	s.Accent = DefaultAccent
	s.ReminderInterval = DefaultReminderInterval
}
