package hydration

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Service owns the engine state: the intake log, the settings and the
// reminder flags. Every mutation is serialized through its lock; reads
// hand out copies so metrics queries can run concurrently.
type Service struct {
	mu             sync.RWMutex
	store          *RecordStore
	settings       Settings
	reminderActive bool
	bannerVisible  bool
	subscribers    []Subscriber
	logger         *slog.Logger
}

// NewService creates a service with factory defaults and an empty log.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    NewRecordStore(),
		settings: DefaultSettings(),
		logger:   logger,
	}
}

// Subscribe registers a change-event subscriber. Not safe to call
// concurrently with mutations; register subscribers during wiring.
func (s *Service) Subscribe(fn Subscriber) {
	s.subscribers = append(s.subscribers, fn)
}

// Restore adopts a persisted snapshot. Out-of-range settings are clamped,
// unknown accents fall back to the default, and records with non-positive
// volumes are dropped rather than rejecting the whole snapshot.
func (s *Service) Restore(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := DefaultSettings()
	if snap.Target > 0 {
		settings.Target = snap.Target
	}
	if snap.ReminderInterval > 0 {
		settings.SetReminderInterval(time.Duration(snap.ReminderInterval * float64(time.Second)))
	}
	if _, err := ParseAccent(string(snap.Accent)); err == nil {
		settings.Accent = snap.Accent
	}
	if snap.RetentionDays > 0 {
		settings.RetentionDays = snap.RetentionDays
	}
	s.settings = settings

	records := make([]Record, 0, len(snap.Records))
	for _, rec := range snap.Records {
		if rec.Volume <= 0 {
			s.logger.Warn("dropping invalid record from snapshot", "id", rec.ID, "volume", rec.Volume)
			continue
		}
		records = append(records, rec)
	}
	s.store.Replace(records)

	s.reminderActive = snap.TimeToDrink
	s.bannerVisible = snap.TimeToDrinkNotificationVisible && snap.TimeToDrink

	s.publishLocked(Event{Kind: EventStateRestored})
}

// LogIntake appends a new intake record dated at the given time. When the
// timestamp collides with an existing record the date is perturbed by a
// millisecond until it is unique.
func (s *Service) LogIntake(date time.Time, volume float64) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := NewRecord(date, volume)
	if err != nil {
		return Record{}, err
	}
	for attempts := 0; ; attempts++ {
		err = s.store.Append(rec)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrDuplicateRecord) || attempts >= 1000 {
			return Record{}, err
		}
		rec.Date = rec.Date.Add(time.Millisecond)
	}

	s.publishLocked(Event{Kind: EventIntakeLogged, Record: &rec})
	return rec, nil
}

// EraseIntake removes the first record matching date and volume.
func (s *Service) EraseIntake(date time.Time, volume float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(date, volume); err != nil {
		return err
	}
	s.publishLocked(Event{Kind: EventIntakeErased})
	return nil
}

// EraseIntakeByID removes the record with the given identifier.
func (s *Service) EraseIntakeByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.RemoveByID(id); err != nil {
		return err
	}
	s.publishLocked(Event{Kind: EventIntakeErased})
	return nil
}

// ClearRecords erases the full intake log. Settings are preserved.
func (s *Service) ClearRecords() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Clear()
	s.publishLocked(Event{Kind: EventRecordsCleared})
}

// PurgeExpired removes records older than the retention window relative
// to now and returns the number removed.
func (s *Service) PurgeExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := RetentionCutoff(now, s.settings.RetentionDays)
	removed := s.store.PurgeOlderThan(cutoff)
	if removed > 0 {
		s.logger.Info("purged expired records", "removed", removed, "cutoff", cutoff)
		s.publishLocked(Event{Kind: EventRecordsPurged, Purged: removed})
	}
	return removed
}

// UpdateTarget sets the daily target.
func (s *Service) UpdateTarget(v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.settings.SetTarget(v); err != nil {
		return err
	}
	s.publishLocked(Event{Kind: EventSettingsChanged})
	return nil
}

// UpdateReminderInterval sets the reminder spacing, clamped and rounded to
// whole seconds. The applied value is returned.
func (s *Service) UpdateReminderInterval(d time.Duration) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := s.settings.SetReminderInterval(d)
	s.publishLocked(Event{Kind: EventSettingsChanged})
	return applied
}

// UpdateAccent sets the accent color.
func (s *Service) UpdateAccent(a Accent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.settings.SetAccent(a); err != nil {
		return err
	}
	s.publishLocked(Event{Kind: EventSettingsChanged})
	return nil
}

// UpdateRetentionDays sets the retention window.
func (s *Service) UpdateRetentionDays(v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.settings.SetRetentionDays(v); err != nil {
		return err
	}
	s.publishLocked(Event{Kind: EventSettingsChanged})
	return nil
}

// RestoreDefaults resets target, accent and reminder interval to factory
// values and clears the reminder flags. Retention window and records are
// untouched.
func (s *Service) RestoreDefaults() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.RestoreDefaults()
	s.reminderActive = false
	s.bannerVisible = false
	s.publishLocked(Event{Kind: EventDefaultsRestored})
}

// SetReminderFlags updates the time-to-drink condition. The banner can
// only show while the condition holds.
func (s *Service) SetReminderFlags(active, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !active {
		visible = false
	}
	if s.reminderActive == active && s.bannerVisible == visible {
		return
	}
	s.reminderActive = active
	s.bannerVisible = visible
	s.publishLocked(Event{Kind: EventReminderFlags})
}

// Dismiss hides the reminder banner and clears the condition. Calling it
// repeatedly is a no-op after the first call.
func (s *Service) Dismiss() {
	s.SetReminderFlags(false, false)
}

// Settings returns a copy of the current settings.
func (s *Service) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Records returns a copy of the full intake log in insertion order.
func (s *Service) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.All()
}

// RecordsOn returns the records logged on the given calendar day.
func (s *Service) RecordsOn(day time.Time) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Record
	for rec := range s.store.On(day) {
		out = append(out, rec)
	}
	return out
}

// MostRecent returns the latest record, or the sentinel when the log is
// empty.
func (s *Service) MostRecent() Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.MostRecent()
}

// TodaysTotal sums the volumes logged on now's calendar day.
func (s *Service) TodaysTotal(now time.Time) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return TodaysTotal(s.store, now)
}

// Remainder returns the volume still needed today. Negative means the
// target has been exceeded.
func (s *Service) Remainder(now time.Time) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Remainder(s.settings, s.store, now)
}

// PercentComplete returns today's progress as a fraction of the target.
func (s *Service) PercentComplete(now time.Time) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return PercentComplete(s.settings, s.store, now)
}

// WeeklyTotals groups all records by calendar day and sums their volumes.
func (s *Service) WeeklyTotals() map[time.Time]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return WeeklyTotals(s.store)
}

// ReminderActive reports whether the time-to-drink condition holds.
func (s *Service) ReminderActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reminderActive
}

// BannerVisible reports whether the reminder banner should be shown.
func (s *Service) BannerVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bannerVisible
}

// Snapshot returns the serialized form of the current state.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Projection returns the read-only view external consumers observe.
func (s *Service) Projection(now time.Time) Projection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Projection{
		Target:          s.settings.Target,
		TodaysTotal:     TodaysTotal(s.store, now),
		PercentComplete: PercentComplete(s.settings, s.store, now),
		Accent:          s.settings.Accent,
		ReminderActive:  s.reminderActive,
	}
}

func (s *Service) snapshotLocked() Snapshot {
	return Snapshot{
		Target:                         s.settings.Target,
		Records:                        s.store.All(),
		Accent:                         s.settings.Accent,
		TimeToDrink:                    s.reminderActive,
		TimeToDrinkNotificationVisible: s.bannerVisible,
		RetentionDays:                  s.settings.RetentionDays,
		ReminderInterval:               s.settings.ReminderInterval.Seconds(),
	}
}

func (s *Service) publishLocked(ev Event) {
	ev.State = s.snapshotLocked()
	for _, fn := range s.subscribers {
		fn(ev)
	}
}
