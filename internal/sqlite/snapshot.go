package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/quenchd/quench/internal/domain/hydration"
	"github.com/quenchd/quench/internal/repository"
)

// SnapshotRepository implements repository.SnapshotRepository for SQLite.
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Load reads the persisted snapshot.
func (r *SnapshotRepository) Load(ctx context.Context) (*hydration.Snapshot, error) {
	var snap hydration.Snapshot
	var accent string
	var timeToDrink, bannerVisible int

	err := r.db.QueryRowContext(ctx, `
		SELECT target, accent, reminder_interval_s, retention_days,
		       time_to_drink, banner_visible
		FROM settings WHERE id = 1
	`).Scan(&snap.Target, &accent, &snap.ReminderInterval, &snap.RetentionDays,
		&timeToDrink, &bannerVisible)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	snap.Accent = hydration.Accent(accent)
	snap.TimeToDrink = timeToDrink != 0
	snap.TimeToDrinkNotificationVisible = bannerVisible != 0

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, recorded_at_ns, volume FROM records ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	defer rows.Close()

	snap.Records = []hydration.Record{}
	for rows.Next() {
		var rec hydration.Record
		var ns int64
		if err := rows.Scan(&rec.ID, &ns, &rec.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec.Date = time.Unix(0, ns).UTC()
		snap.Records = append(snap.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return &snap, nil
}

// Save writes the full snapshot in one transaction, replacing whatever was
// stored before.
func (r *SnapshotRepository) Save(ctx context.Context, snap *hydration.Snapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO settings (id, target, accent, reminder_interval_s,
		                      retention_days, time_to_drink, banner_visible)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			target = excluded.target,
			accent = excluded.accent,
			reminder_interval_s = excluded.reminder_interval_s,
			retention_days = excluded.retention_days,
			time_to_drink = excluded.time_to_drink,
			banner_visible = excluded.banner_visible
	`, snap.Target, string(snap.Accent), snap.ReminderInterval,
		snap.RetentionDays, boolToInt(snap.TimeToDrink),
		boolToInt(snap.TimeToDrinkNotificationVisible))
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	for i, rec := range snap.Records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO records (id, position, recorded_at_ns, volume)
			VALUES (?, ?, ?, ?)
		`, rec.ID, i, rec.Date.UnixNano(), rec.Volume)
		if err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
