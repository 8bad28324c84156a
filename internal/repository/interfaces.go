package repository

import (
	"context"

	"github.com/quenchd/quench/internal/domain/hydration"
)

// SnapshotRepository persists engine state snapshots. Load returns
// ErrNotFound when nothing has been saved yet; a snapshot that fails to
// decode is surfaced as an error so callers can fall back to defaults.
type SnapshotRepository interface {
	Load(ctx context.Context) (*hydration.Snapshot, error)
	Save(ctx context.Context, snap *hydration.Snapshot) error
}
