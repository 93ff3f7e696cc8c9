package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/rentcheck"
)

// Ensure LoggingSnapshotService implements rentcheck.SnapshotService.
var _ rentcheck.SnapshotService = (*LoggingSnapshotService)(nil)

// LoggingSnapshotService wraps a SnapshotService with logging of writes.
// Reads are delegated without logging.
type LoggingSnapshotService struct {
	next   rentcheck.SnapshotService
	logger *slog.Logger
}

// NewLoggingSnapshotService creates a new LoggingSnapshotService.
func NewLoggingSnapshotService(next rentcheck.SnapshotService, logger *slog.Logger) *LoggingSnapshotService {
	return &LoggingSnapshotService{next: next, logger: logger}
}

func (s *LoggingSnapshotService) CreateSnapshot(ctx context.Context, snap *rentcheck.Snapshot) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create snapshot",
			"id", snap.ID,
			"source", snap.Source,
			"listings", len(snap.Listings),
			"hash", snap.ContentHash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateSnapshot(ctx, snap)
}

func (s *LoggingSnapshotService) FindSnapshotByID(ctx context.Context, id string) (*rentcheck.Snapshot, error) {
	return s.next.FindSnapshotByID(ctx, id)
}

func (s *LoggingSnapshotService) FindSnapshots(ctx context.Context, filter rentcheck.SnapshotFilter) ([]*rentcheck.Snapshot, error) {
	return s.next.FindSnapshots(ctx, filter)
}

func (s *LoggingSnapshotService) DeleteSnapshot(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete snapshot",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteSnapshot(ctx, id)
}
