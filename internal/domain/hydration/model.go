package hydration

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Accent is one of the named accent colors the companion apps render with.
type Accent string

const (
	AccentBrown  Accent = "brown"
	AccentIndigo Accent = "indigo"
	AccentBlue   Accent = "blue"
	AccentTeal   Accent = "teal"
	AccentGreen  Accent = "green"
	AccentYellow Accent = "yellow"
	AccentOrange Accent = "orange"
	AccentRed    Accent = "red"
	AccentPink   Accent = "pink"
)

// Accents lists every valid accent in display order.
var Accents = []Accent{
	AccentBrown,
	AccentIndigo,
	AccentBlue,
	AccentTeal,
	AccentGreen,
	AccentYellow,
	AccentOrange,
	AccentRed,
	AccentPink,
}

// ParseAccent validates a color name against the known accents.
func ParseAccent(s string) (Accent, error) {
	for _, a := range Accents {
		if string(a) == s {
			return a, nil
		}
	}
	return "", ErrInvalidAccent
}

// UnmarshalJSON decodes an accent, falling back to the default for unknown
// color names so old or hand-edited snapshots still load.
func (a *Accent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAccent(s)
	if err != nil {
		parsed = DefaultAccent
	}
	*a = parsed
	return nil
}

// Factory defaults. RestoreDefaults and freshly created states both draw
// from here; tests assert against these rather than scattered literals.
const (
	DefaultTarget           = 3000.0 // mL per day
	DefaultReminderInterval = time.Hour
	DefaultRetentionDays    = 7.0
	DefaultAccent           = AccentIndigo

	MinReminderInterval = 20 * time.Minute
	MaxReminderInterval = 2 * time.Hour
)

// Record is a single logged intake event. The ID is a surrogate identifier
// assigned at creation time; the timestamp is an ordinary attribute and two
// records may legitimately be logged close together.
type Record struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Volume float64   `json:"volume"` // mL
}

// NewRecord creates a record for the given intake event.
func NewRecord(date time.Time, volume float64) (Record, error) {
	if volume <= 0 {
		return Record{}, ErrInvalidVolume
	}
	return Record{
		ID:     uuid.NewString(),
		Date:   date,
		Volume: volume,
	}, nil
}

// SentinelRecord is returned where "no intake ever recorded" must be
// expressed as a record. Callers must not treat it as a real 0 mL event.
func SentinelRecord() Record {
	return Record{Date: time.Unix(0, 0).UTC()}
}

// IsSentinel reports whether the record is the "no intake ever" sentinel.
func (r Record) IsSentinel() bool {
	return r.ID == "" && r.Volume == 0
}

// Snapshot is the serialized form of the engine state handed to the
// persistence gateway. Field names match the autosave format consumed by
// the companion apps and must round-trip exactly.
type Snapshot struct {
	Target                         float64  `json:"target"`
	Records                        []Record `json:"records"`
	Accent                         Accent   `json:"accent"`
	TimeToDrink                    bool     `json:"timeToDrink"`
	TimeToDrinkNotificationVisible bool     `json:"timeToDrinkNotificationVisible"`
	RetentionDays                  float64  `json:"retentionDays"`
	ReminderInterval               float64  `json:"reminderInterval"` // seconds
}
