package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/rentcheck"
	"github.com/fwojciec/rentcheck/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testListings() []*rentcheck.Listing {
	return []*rentcheck.Listing{
		{Title: "Loft in Mission District", Cost: 210, ListingID: "1944564", License: "2022-004088STR", RoomType: rentcheck.RoomTypeEntire, Bedrooms: 1},
		{Title: "Private room in Mission District", Cost: 109, ListingID: "6600081", License: rentcheck.LicensePending, RoomType: rentcheck.RoomTypePrivate, Bedrooms: 1},
		{Title: "Room in Mission District", Cost: 120, ListingID: "21178497", License: "STR-0002110", RoomType: rentcheck.RoomTypeShared, Bedrooms: 1},
	}
}

func createTestSnapshot(t *testing.T, svc *sqlite.SnapshotService, source string) *rentcheck.Snapshot {
	t.Helper()
	snap := &rentcheck.Snapshot{Source: source, Listings: testListings()}
	require.NoError(t, svc.CreateSnapshot(context.Background(), snap))
	return snap
}

func TestSnapshotService_CreateSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("creates snapshot with generated ID, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))

		snap := &rentcheck.Snapshot{Source: "search.html", Listings: testListings()}
		err := svc.CreateSnapshot(context.Background(), snap)

		require.NoError(t, err)
		assert.NotEmpty(t, snap.ID, "ID should be generated")
		assert.Len(t, snap.ContentHash, 16)
		assert.Equal(t, 3, snap.ListingCount)
		assert.False(t, snap.CreatedAt.IsZero(), "CreatedAt should be set")
	})

	t.Run("returns error for invalid snapshot", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))

		err := svc.CreateSnapshot(context.Background(), &rentcheck.Snapshot{Source: "search.html"})

		require.Error(t, err)
		assert.Equal(t, rentcheck.EINVALID, rentcheck.ErrorCode(err))
	})

	t.Run("equal listings produce equal hashes", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))

		a := createTestSnapshot(t, svc, "search.html")
		b := createTestSnapshot(t, svc, "search.html")

		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, a.ContentHash, b.ContentHash)
	})

	t.Run("changed listings produce a different hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))
		a := createTestSnapshot(t, svc, "search.html")

		listings := testListings()
		listings[1].License = "STR-0009999"
		b := &rentcheck.Snapshot{Source: "search.html", Listings: listings}
		require.NoError(t, svc.CreateSnapshot(context.Background(), b))

		assert.NotEqual(t, a.ContentHash, b.ContentHash)
	})

	t.Run("writes nothing when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := svc.CreateSnapshot(ctx, &rentcheck.Snapshot{Source: "search.html", Listings: testListings()})

		require.Error(t, err)
		var count int
		require.NoError(t, db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM snapshots").Scan(&count))
		assert.Equal(t, 0, count)
	})
}

func TestSnapshotService_FindSnapshotByID(t *testing.T) {
	t.Parallel()

	t.Run("returns listings in page order", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))
		created := createTestSnapshot(t, svc, "search.html")

		found, err := svc.FindSnapshotByID(context.Background(), created.ID)

		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "search.html", found.Source)
		assert.Equal(t, created.ContentHash, found.ContentHash)
		assert.Equal(t, 3, found.ListingCount)
		assert.True(t, created.CreatedAt.Equal(found.CreatedAt))
		assert.Equal(t, testListings(), found.Listings)
	})

	t.Run("returns ENOTFOUND for missing snapshot", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))

		_, err := svc.FindSnapshotByID(context.Background(), "nonexistent")

		require.Error(t, err)
		assert.Equal(t, rentcheck.ENOTFOUND, rentcheck.ErrorCode(err))
	})
}

func TestSnapshotService_FindSnapshots(t *testing.T) {
	t.Parallel()

	t.Run("returns snapshots newest first without listings", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))
		first := createTestSnapshot(t, svc, "search.html")
		second := createTestSnapshot(t, svc, "search.html")

		snaps, err := svc.FindSnapshots(context.Background(), rentcheck.SnapshotFilter{})

		require.NoError(t, err)
		require.Len(t, snaps, 2)
		assert.Equal(t, second.ID, snaps[0].ID)
		assert.Equal(t, first.ID, snaps[1].ID)
		assert.Nil(t, snaps[0].Listings)
		assert.Equal(t, 3, snaps[0].ListingCount)
	})

	t.Run("filters by source", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))
		createTestSnapshot(t, svc, "mission.html")
		want := createTestSnapshot(t, svc, "soma.html")

		source := "soma.html"
		snaps, err := svc.FindSnapshots(context.Background(), rentcheck.SnapshotFilter{Source: &source})

		require.NoError(t, err)
		require.Len(t, snaps, 1)
		assert.Equal(t, want.ID, snaps[0].ID)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))
		var ids []string
		for i := 0; i < 5; i++ {
			ids = append(ids, createTestSnapshot(t, svc, fmt.Sprintf("page%d.html", i)).ID)
		}

		page, err := svc.FindSnapshots(context.Background(), rentcheck.SnapshotFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, ids[3], page[0].ID)
		assert.Equal(t, ids[2], page[1].ID)

		rest, err := svc.FindSnapshots(context.Background(), rentcheck.SnapshotFilter{Offset: 3})
		require.NoError(t, err)
		assert.Len(t, rest, 2)
	})

	t.Run("returns empty result for empty database", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))

		snaps, err := svc.FindSnapshots(context.Background(), rentcheck.SnapshotFilter{})

		require.NoError(t, err)
		assert.Empty(t, snaps)
	})
}

func TestSnapshotService_DeleteSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("removes snapshot and its listings", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)
		snap := createTestSnapshot(t, svc, "search.html")
		ctx := context.Background()

		require.NoError(t, svc.DeleteSnapshot(ctx, snap.ID))

		_, err := svc.FindSnapshotByID(ctx, snap.ID)
		assert.Equal(t, rentcheck.ENOTFOUND, rentcheck.ErrorCode(err))

		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM listings").Scan(&count))
		assert.Equal(t, 0, count)
	})

	t.Run("returns ENOTFOUND for missing snapshot", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSnapshotService(setupTestDB(t))

		err := svc.DeleteSnapshot(context.Background(), "nonexistent")

		require.Error(t, err)
		assert.Equal(t, rentcheck.ENOTFOUND, rentcheck.ErrorCode(err))
	})
}
