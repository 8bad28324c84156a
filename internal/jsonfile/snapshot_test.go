package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quenchd/quench/internal/domain/hydration"
	"github.com/quenchd/quench/internal/repository"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *SnapshotRepository {
	t.Helper()
	return NewSnapshotRepository(filepath.Join(t.TempDir(), "autosave.json"))
}

func TestSnapshotRepository_Load_Missing(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Load(context.Background())
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSnapshotRepository_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	snap := &hydration.Snapshot{
		Target: 2800,
		Records: []hydration.Record{
			{ID: "r1", Date: time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC), Volume: 500},
			{ID: "r2", Date: time.Date(2026, 8, 30, 10, 0, 0, 123456789, time.UTC), Volume: 300},
		},
		Accent:                         hydration.AccentGreen,
		TimeToDrink:                    true,
		TimeToDrinkNotificationVisible: false,
		RetentionDays:                  7,
		ReminderInterval:               3600,
	}
	require.NoError(t, repo.Save(ctx, snap))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, snap, loaded)
}

func TestSnapshotRepository_Load_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autosave.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	repo := NewSnapshotRepository(path)

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, repository.ErrNotFound)
}

func TestSnapshotRepository_UnknownAccentFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autosave.json")
	payload := `{"target":3000,"records":[],"accent":"mauve","timeToDrink":false,` +
		`"timeToDrinkNotificationVisible":false,"retentionDays":7,"reminderInterval":3600}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))
	repo := NewSnapshotRepository(path)

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, hydration.DefaultAccent, loaded.Accent)
}

func TestSnapshotRepository_Save_Overwrites(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := &hydration.Snapshot{Target: 3000, Records: []hydration.Record{}, Accent: hydration.AccentIndigo, RetentionDays: 7, ReminderInterval: 3600}
	second := &hydration.Snapshot{Target: 2000, Records: []hydration.Record{}, Accent: hydration.AccentPink, RetentionDays: 7, ReminderInterval: 1800}
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, second, loaded)
}
