// Package jsonfile persists the engine snapshot as a single JSON file, the
// same autosave format the original companion apps used.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quenchd/quench/internal/domain/hydration"
	"github.com/quenchd/quench/internal/repository"
)

// SnapshotRepository implements repository.SnapshotRepository on a file.
type SnapshotRepository struct {
	path string
}

// NewSnapshotRepository creates a repository writing to the given path.
func NewSnapshotRepository(path string) *SnapshotRepository {
	return &SnapshotRepository{path: path}
}

// Load reads and decodes the snapshot file.
func (r *SnapshotRepository) Load(_ context.Context) (*hydration.Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap hydration.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// Save encodes the snapshot and writes it atomically via a temp file.
func (r *SnapshotRepository) Save(_ context.Context, snap *hydration.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
