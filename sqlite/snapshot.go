package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/rentcheck"
	"github.com/fwojciec/rentcheck/xxhash"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ rentcheck.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements rentcheck.SnapshotService using SQLite.
type SnapshotService struct {
	db *DB
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// CreateSnapshot stores a snapshot and its listings in one transaction.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, snap *rentcheck.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.New().String()
	createdAt := time.Now().UTC()
	hash := xxhash.HashListings(snap.Listings)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, source, content_hash, listing_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, snap.Source, hash, len(snap.Listings), formatTime(createdAt)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO listings (snapshot_id, position, listing_id, title, cost, license, room_type, bedrooms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, l := range snap.Listings {
		if _, err := stmt.ExecContext(ctx, id, i, l.ListingID, l.Title, l.Cost, l.License, l.RoomType.String(), l.Bedrooms); err != nil {
			return fmt.Errorf("insert listing %s: %w", l.ListingID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	snap.ID = id
	snap.ContentHash = hash
	snap.ListingCount = len(snap.Listings)
	snap.CreatedAt = createdAt
	return nil
}

// FindSnapshotByID retrieves a snapshot with its listings.
func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*rentcheck.Snapshot, error) {
	var snap rentcheck.Snapshot
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source, content_hash, listing_count, created_at
		FROM snapshots
		WHERE id = ?
	`, id).Scan(&snap.ID, &snap.Source, &snap.ContentHash, &snap.ListingCount, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, rentcheck.Errorf(rentcheck.ENOTFOUND, "snapshot not found")
	}
	if err != nil {
		return nil, err
	}

	if snap.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}

	if snap.Listings, err = s.findListings(ctx, id); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *SnapshotService) findListings(ctx context.Context, snapshotID string) ([]*rentcheck.Listing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT listing_id, title, cost, license, room_type, bedrooms
		FROM listings
		WHERE snapshot_id = ?
		ORDER BY position ASC
	`, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*rentcheck.Listing
	for rows.Next() {
		var l rentcheck.Listing
		var roomType string

		if err := rows.Scan(&l.ListingID, &l.Title, &l.Cost, &l.License, &roomType, &l.Bedrooms); err != nil {
			return nil, err
		}
		if l.RoomType, err = rentcheck.ParseRoomType(roomType); err != nil {
			return nil, err
		}

		listings = append(listings, &l)
	}

	return listings, rows.Err()
}

// FindSnapshots retrieves snapshots matching the filter, newest first.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter rentcheck.SnapshotFilter) ([]*rentcheck.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source, content_hash, listing_count, created_at FROM snapshots WHERE 1=1")

	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*rentcheck.Snapshot
	for rows.Next() {
		var snap rentcheck.Snapshot
		var createdAt string

		if err := rows.Scan(&snap.ID, &snap.Source, &snap.ContentHash, &snap.ListingCount, &createdAt); err != nil {
			return nil, err
		}
		if snap.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
			return nil, err
		}

		snaps = append(snaps, &snap)
	}

	return snaps, rows.Err()
}

// DeleteSnapshot permanently removes a snapshot and its listings.
func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return rentcheck.Errorf(rentcheck.ENOTFOUND, "snapshot not found")
	}
	return nil
}
