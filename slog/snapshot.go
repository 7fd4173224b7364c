package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/metro"
)

// Ensure LoggingSnapshotService implements metro.SnapshotService.
var _ metro.SnapshotService = (*LoggingSnapshotService)(nil)

// LoggingSnapshotService wraps a SnapshotService with debug logging.
type LoggingSnapshotService struct {
	next   metro.SnapshotService
	logger *slog.Logger
}

// NewLoggingSnapshotService creates a new LoggingSnapshotService.
func NewLoggingSnapshotService(next metro.SnapshotService, logger *slog.Logger) *LoggingSnapshotService {
	return &LoggingSnapshotService{next: next, logger: logger}
}

// CreateSnapshot delegates to the wrapped service and logs the new ID.
func (s *LoggingSnapshotService) CreateSnapshot(ctx context.Context, snapshot *metro.Snapshot) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("snapshot create",
			"id", snapshot.ID,
			"url", snapshot.SourceURL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateSnapshot(ctx, snapshot)
}

// FindSnapshotByID delegates to the wrapped service.
func (s *LoggingSnapshotService) FindSnapshotByID(ctx context.Context, id string) (snapshot *metro.Snapshot, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("snapshot find",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSnapshotByID(ctx, id)
}

// FindLatestSnapshot delegates to the wrapped service.
func (s *LoggingSnapshotService) FindLatestSnapshot(ctx context.Context) (snapshot *metro.Snapshot, err error) {
	defer func(begin time.Time) {
		id := ""
		if snapshot != nil {
			id = snapshot.ID
		}
		s.logger.Debug("snapshot find latest",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindLatestSnapshot(ctx)
}

// FindSnapshots delegates to the wrapped service and logs the count.
func (s *LoggingSnapshotService) FindSnapshots(ctx context.Context, filter metro.SnapshotFilter) (snapshots []*metro.Snapshot, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("snapshot list",
			"count", len(snapshots),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSnapshots(ctx, filter)
}

// DeleteSnapshot delegates to the wrapped service.
func (s *LoggingSnapshotService) DeleteSnapshot(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("snapshot delete",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteSnapshot(ctx, id)
}
