package hydration

import (
	"iter"
	"time"
)

// RecordStore holds the ordered intake log. It is not safe for concurrent
// use on its own; the owning Service serializes access.
type RecordStore struct {
	records []Record
}

// NewRecordStore creates an empty store.
func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// Replace swaps the full record log, preserving the given order.
func (s *RecordStore) Replace(records []Record) {
	s.records = make([]Record, len(records))
	copy(s.records, records)
}

// Append inserts a record at the end of the log. Records never share a
// timestamp; callers hitting ErrDuplicateRecord must perturb the date.
func (s *RecordStore) Append(rec Record) error {
	if rec.Volume <= 0 {
		return ErrInvalidVolume
	}
	for _, existing := range s.records {
		if existing.Date.Equal(rec.Date) {
			return ErrDuplicateRecord
		}
	}
	s.records = append(s.records, rec)
	return nil
}

// Remove deletes the first record matching date and volume.
func (s *RecordStore) Remove(date time.Time, volume float64) error {
	for i, rec := range s.records {
		if rec.Date.Equal(date) && rec.Volume == volume {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return ErrRecordNotFound
}

// RemoveByID deletes the record with the given surrogate identifier.
func (s *RecordStore) RemoveByID(id string) error {
	for i, rec := range s.records {
		if rec.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return ErrRecordNotFound
}

// On yields the records whose date falls within the same calendar day as
// the given reference time, in original order. The sequence is restartable.
func (s *RecordStore) On(day time.Time) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, rec := range s.records {
			if sameDay(rec.Date, day) && !yield(rec) {
				return
			}
		}
	}
}

// PurgeOlderThan removes every record dated before the cutoff and returns
// the number removed.
func (s *RecordStore) PurgeOlderThan(cutoff time.Time) int {
	kept := s.records[:0]
	removed := 0
	for _, rec := range s.records {
		if rec.Date.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	return removed
}

// Clear drops every record.
func (s *RecordStore) Clear() {
	s.records = nil
}

// MostRecent returns the record with the latest date, or the sentinel
// record when the log is empty.
func (s *RecordStore) MostRecent() Record {
	if len(s.records) == 0 {
		return SentinelRecord()
	}
	latest := s.records[0]
	for _, rec := range s.records[1:] {
		if rec.Date.After(latest.Date) {
			latest = rec
		}
	}
	return latest
}

// All returns a copy of the full log in insertion order.
func (s *RecordStore) All() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *RecordStore) Len() int {
	return len(s.records)
}
