package rentcheck

import (
	"context"
	"time"
)

// Snapshot is a stored run of the pipeline over one search-results page.
type Snapshot struct {
	ID           string     `json:"id"`
	Source       string     `json:"source"`
	ContentHash  string     `json:"contentHash"`
	ListingCount int        `json:"listingCount"`
	Listings     []*Listing `json:"listings,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.Source == "" {
		return Errorf(EINVALID, "snapshot source required")
	}
	if len(s.Listings) == 0 {
		return Errorf(EINVALID, "snapshot listings required")
	}
	for _, l := range s.Listings {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SnapshotService represents a service for managing snapshots.
type SnapshotService interface {
	// CreateSnapshot stores a snapshot and its listings.
	// ID, ContentHash, ListingCount and CreatedAt are set on success.
	CreateSnapshot(ctx context.Context, snap *Snapshot) error

	// FindSnapshotByID retrieves a snapshot with its listings in page order.
	// Returns ENOTFOUND if snapshot does not exist.
	FindSnapshotByID(ctx context.Context, id string) (*Snapshot, error)

	// FindSnapshots retrieves snapshots matching the filter, newest first.
	// Listings are not loaded.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)

	// DeleteSnapshot permanently removes a snapshot and its listings.
	// Returns ENOTFOUND if snapshot does not exist.
	DeleteSnapshot(ctx context.Context, id string) error
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	Source *string `json:"source"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
