package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/fwojciec/rentcheck"
	"github.com/fwojciec/rentcheck/postgres"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to the database named by RENTCHECK_POSTGRES_DSN and
// skips the test when it is unset.
func setupTestDB(t *testing.T) *postgres.DB {
	t.Helper()
	dsn := os.Getenv("RENTCHECK_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("RENTCHECK_POSTGRES_DSN not set")
	}
	db := postgres.NewDB(dsn)
	require.NoError(t, db.Open(context.Background()))
	t.Cleanup(func() { db.Close() })
	return db
}

// uniqueSource keeps tests sharing one database apart.
func uniqueSource() string {
	return "search-" + uuid.NewString() + ".html"
}

func testListings() []*rentcheck.Listing {
	return []*rentcheck.Listing{
		{Title: "Loft in Mission District", Cost: 210, ListingID: "1944564", License: "2022-004088STR", RoomType: rentcheck.RoomTypeEntire, Bedrooms: 1},
		{Title: "Private room in Mission District", Cost: 109, ListingID: "6600081", License: rentcheck.LicensePending, RoomType: rentcheck.RoomTypePrivate, Bedrooms: 1},
		{Title: "Room in Mission District", Cost: 120, ListingID: "21178497", License: "STR-0002110", RoomType: rentcheck.RoomTypeShared, Bedrooms: 1},
	}
}

func TestIsDSN(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsDSN("postgres://localhost/rentcheck"))
	assert.True(t, postgres.IsDSN("postgresql://u:p@db:5432/rentcheck?sslmode=disable"))
	assert.False(t, postgres.IsDSN("/home/me/.rentcheck/rentcheck.db"))
	assert.False(t, postgres.IsDSN(":memory:"))
}

func TestSnapshotService(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a snapshot with listings in order", func(t *testing.T) {
		t.Parallel()

		svc := postgres.NewSnapshotService(setupTestDB(t))
		ctx := context.Background()
		snap := &rentcheck.Snapshot{Source: uniqueSource(), Listings: testListings()}

		require.NoError(t, svc.CreateSnapshot(ctx, snap))
		assert.NotEmpty(t, snap.ID)
		assert.Len(t, snap.ContentHash, 16)

		found, err := svc.FindSnapshotByID(ctx, snap.ID)
		require.NoError(t, err)
		assert.Equal(t, snap.Source, found.Source)
		assert.Equal(t, snap.ContentHash, found.ContentHash)
		assert.Equal(t, testListings(), found.Listings)
	})

	t.Run("stores more listings than one batch", func(t *testing.T) {
		t.Parallel()

		svc := postgres.NewSnapshotService(setupTestDB(t))
		ctx := context.Background()
		var listings []*rentcheck.Listing
		for i := 0; i < 120; i++ {
			listings = append(listings, &rentcheck.Listing{ListingID: uuid.NewString(), Cost: i, RoomType: rentcheck.RoomTypeEntire})
		}
		snap := &rentcheck.Snapshot{Source: uniqueSource(), Listings: listings}

		require.NoError(t, svc.CreateSnapshot(ctx, snap))

		found, err := svc.FindSnapshotByID(ctx, snap.ID)
		require.NoError(t, err)
		require.Len(t, found.Listings, 120)
		assert.Equal(t, 119, found.Listings[119].Cost)
	})

	t.Run("finds snapshots for a source newest first", func(t *testing.T) {
		t.Parallel()

		svc := postgres.NewSnapshotService(setupTestDB(t))
		ctx := context.Background()
		source := uniqueSource()
		first := &rentcheck.Snapshot{Source: source, Listings: testListings()}
		second := &rentcheck.Snapshot{Source: source, Listings: testListings()}
		require.NoError(t, svc.CreateSnapshot(ctx, first))
		require.NoError(t, svc.CreateSnapshot(ctx, second))

		snaps, err := svc.FindSnapshots(ctx, rentcheck.SnapshotFilter{Source: &source})
		require.NoError(t, err)
		require.Len(t, snaps, 2)
		assert.Equal(t, second.ID, snaps[0].ID)
		assert.Equal(t, first.ID, snaps[1].ID)

		limited, err := svc.FindSnapshots(ctx, rentcheck.SnapshotFilter{Source: &source, Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, limited, 1)
		assert.Equal(t, first.ID, limited[0].ID)
	})

	t.Run("deletes snapshots", func(t *testing.T) {
		t.Parallel()

		svc := postgres.NewSnapshotService(setupTestDB(t))
		ctx := context.Background()
		snap := &rentcheck.Snapshot{Source: uniqueSource(), Listings: testListings()}
		require.NoError(t, svc.CreateSnapshot(ctx, snap))

		require.NoError(t, svc.DeleteSnapshot(ctx, snap.ID))

		_, err := svc.FindSnapshotByID(ctx, snap.ID)
		assert.Equal(t, rentcheck.ENOTFOUND, rentcheck.ErrorCode(err))
		err = svc.DeleteSnapshot(ctx, snap.ID)
		assert.Equal(t, rentcheck.ENOTFOUND, rentcheck.ErrorCode(err))
	})

	t.Run("rejects invalid snapshots", func(t *testing.T) {
		t.Parallel()

		svc := postgres.NewSnapshotService(setupTestDB(t))

		err := svc.CreateSnapshot(context.Background(), &rentcheck.Snapshot{Source: uniqueSource()})

		assert.Equal(t, rentcheck.EINVALID, rentcheck.ErrorCode(err))
	})
}
