package mock

import (
	"context"

	"github.com/fwojciec/metro"
)

var _ metro.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of metro.SnapshotService.
type SnapshotService struct {
	CreateSnapshotFn     func(ctx context.Context, snapshot *metro.Snapshot) error
	FindSnapshotByIDFn   func(ctx context.Context, id string) (*metro.Snapshot, error)
	FindLatestSnapshotFn func(ctx context.Context) (*metro.Snapshot, error)
	FindSnapshotsFn      func(ctx context.Context, filter metro.SnapshotFilter) ([]*metro.Snapshot, error)
	DeleteSnapshotFn     func(ctx context.Context, id string) error
}

func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *metro.Snapshot) error {
	return s.CreateSnapshotFn(ctx, snapshot)
}

func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*metro.Snapshot, error) {
	return s.FindSnapshotByIDFn(ctx, id)
}

func (s *SnapshotService) FindLatestSnapshot(ctx context.Context) (*metro.Snapshot, error) {
	return s.FindLatestSnapshotFn(ctx)
}

func (s *SnapshotService) FindSnapshots(ctx context.Context, filter metro.SnapshotFilter) ([]*metro.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}

func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	return s.DeleteSnapshotFn(ctx, id)
}
