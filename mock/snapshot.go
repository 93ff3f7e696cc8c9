package mock

import (
	"context"

	"github.com/fwojciec/rentcheck"
)

var _ rentcheck.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of rentcheck.SnapshotService.
type SnapshotService struct {
	CreateSnapshotFn   func(ctx context.Context, snap *rentcheck.Snapshot) error
	FindSnapshotByIDFn func(ctx context.Context, id string) (*rentcheck.Snapshot, error)
	FindSnapshotsFn    func(ctx context.Context, filter rentcheck.SnapshotFilter) ([]*rentcheck.Snapshot, error)
	DeleteSnapshotFn   func(ctx context.Context, id string) error
}

func (s *SnapshotService) CreateSnapshot(ctx context.Context, snap *rentcheck.Snapshot) error {
	return s.CreateSnapshotFn(ctx, snap)
}

func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*rentcheck.Snapshot, error) {
	return s.FindSnapshotByIDFn(ctx, id)
}

func (s *SnapshotService) FindSnapshots(ctx context.Context, filter rentcheck.SnapshotFilter) ([]*rentcheck.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}

func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	return s.DeleteSnapshotFn(ctx, id)
}
