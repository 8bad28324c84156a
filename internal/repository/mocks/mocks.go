package mocks

import (
	"context"
	"time"

	"github.com/quenchd/quench/internal/domain/hydration"
	"github.com/stretchr/testify/mock"
)

// SnapshotRepository is a mock for repository.SnapshotRepository.
type SnapshotRepository struct {
	mock.Mock
}

func (m *SnapshotRepository) Load(ctx context.Context) (*hydration.Snapshot, error) {
	args := m.Called(ctx)
	if snap, ok := args.Get(0).(*hydration.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SnapshotRepository) Save(ctx context.Context, snap *hydration.Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

// NotificationGateway is a mock for reminder.NotificationGateway.
type NotificationGateway struct {
	mock.Mock
}

func (m *NotificationGateway) Schedule(ctx context.Context, id string, fireAt time.Time, title, body string) error {
	args := m.Called(ctx, id, fireAt, title, body)
	return args.Error(0)
}

func (m *NotificationGateway) Cancel(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
