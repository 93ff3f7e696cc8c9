package postgres

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

// batchSize bounds the number of listing rows per INSERT statement.
const batchSize = 50

// SnapshotService implements rentcheck.SnapshotService using PostgreSQL.
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
		VALUES ($1, $2, $3, $4, $5)
	`, id, snap.Source, hash, len(snap.Listings), createdAt); err != nil {
		return err
	}

	for i := 0; i < len(snap.Listings); i += batchSize {
		end := min(i+batchSize, len(snap.Listings))
		if err := insertListings(ctx, tx, id, i, snap.Listings[i:end]); err != nil {
			return err
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

// insertListings writes batch with positions starting at offset.
func insertListings(ctx context.Context, tx *sql.Tx, snapshotID string, offset int, batch []*rentcheck.Listing) error {
	const columns = 8
	values := make([]string, 0, len(batch))
	args := make([]any, 0, len(batch)*columns)

	for i, l := range batch {
		base := i * columns
		values = append(values, fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
		args = append(args, snapshotID, offset+i, l.ListingID, l.Title, l.Cost, l.License, l.RoomType.String(), l.Bedrooms)
	}

	query := `INSERT INTO listings (snapshot_id, position, listing_id, title, cost, license, room_type, bedrooms) VALUES ` +
		strings.Join(values, ",")
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// FindSnapshotByID retrieves a snapshot with its listings.
func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*rentcheck.Snapshot, error) {
	var snap rentcheck.Snapshot

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source, content_hash, listing_count, created_at
		FROM snapshots
		WHERE id = $1
	`, id).Scan(&snap.ID, &snap.Source, &snap.ContentHash, &snap.ListingCount, &snap.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, rentcheck.Errorf(rentcheck.ENOTFOUND, "snapshot not found")
	}
	if err != nil {
		return nil, err
	}
	snap.CreatedAt = snap.CreatedAt.UTC()

	rows, err := s.db.QueryContext(ctx, `
		SELECT listing_id, title, cost, license, room_type, bedrooms
		FROM listings
		WHERE snapshot_id = $1
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l rentcheck.Listing
		var roomType string

		if err := rows.Scan(&l.ListingID, &l.Title, &l.Cost, &l.License, &roomType, &l.Bedrooms); err != nil {
			return nil, err
		}
		if l.RoomType, err = rentcheck.ParseRoomType(roomType); err != nil {
			return nil, err
		}

		snap.Listings = append(snap.Listings, &l)
	}

	return &snap, rows.Err()
}

// FindSnapshots retrieves snapshots matching the filter, newest first.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter rentcheck.SnapshotFilter) ([]*rentcheck.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source, content_hash, listing_count, created_at FROM snapshots WHERE 1=1")

	if filter.Source != nil {
		args = append(args, *filter.Source)
		fmt.Fprintf(&query, " AND source = $%d", len(args))
	}

	query.WriteString(" ORDER BY created_at DESC, seq DESC")

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&query, " LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&query, " OFFSET $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*rentcheck.Snapshot
	for rows.Next() {
		var snap rentcheck.Snapshot
		if err := rows.Scan(&snap.ID, &snap.Source, &snap.ContentHash, &snap.ListingCount, &snap.CreatedAt); err != nil {
			return nil, err
		}
		snap.CreatedAt = snap.CreatedAt.UTC()
		snaps = append(snaps, &snap)
	}

	return snaps, rows.Err()
}

// DeleteSnapshot permanently removes a snapshot and its listings.
func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE id = $1", id)
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
