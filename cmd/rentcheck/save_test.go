package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/rentcheck"
	main "github.com/fwojciec/rentcheck/cmd/rentcheck"
	"github.com/fwojciec/rentcheck/mock"
	"github.com/fwojciec/rentcheck/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubReconciler returns a Reconciler producing the given summaries with a
// pending license each.
func stubReconciler(summaries ...rentcheck.ListingSummary) *reconcile.Reconciler {
	return &reconcile.Reconciler{
		Source: &mock.DocumentSource{
			SearchDocumentFn: func(context.Context, string) (string, error) { return "<html></html>", nil },
		},
		Search: &mock.SearchExtractor{
			ExtractSummariesFn: func(string) ([]rentcheck.ListingSummary, error) { return summaries, nil },
		},
		Details: &mock.DetailService{
			FindListingDetailFn: func(context.Context, string) (*rentcheck.ListingDetail, error) {
				return &rentcheck.ListingDetail{License: rentcheck.LicensePending, Bedrooms: 1}, nil
			},
		},
	}
}

func TestSaveCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("stores listings under the search page name", func(t *testing.T) {
		t.Parallel()

		var created *rentcheck.Snapshot
		snapshots := &mock.SnapshotService{
			FindSnapshotsFn: func(_ context.Context, filter rentcheck.SnapshotFilter) ([]*rentcheck.Snapshot, error) {
				require.NotNil(t, filter.Source)
				assert.Equal(t, "mission.html", *filter.Source)
				assert.Equal(t, 1, filter.Limit)
				return nil, nil
			},
			CreateSnapshotFn: func(_ context.Context, snap *rentcheck.Snapshot) error {
				created = snap
				snap.ID = "snap-1"
				snap.ContentHash = "abcd"
				snap.ListingCount = len(snap.Listings)
				return nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     &bytes.Buffer{},
			Search:     "mission.html",
			Reconciler: stubReconciler(rentcheck.ListingSummary{Title: "Loft", Cost: 210, ListingID: "1"}),
			Snapshots:  snapshots,
		}

		err := (&main.SaveCmd{}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "mission.html", created.Source)
		assert.Len(t, created.Listings, 1)
		assert.Contains(t, stdout.String(), "Saved snapshot snap-1 (1 listings, hash abcd)")
	})

	t.Run("reports unchanged content", func(t *testing.T) {
		t.Parallel()

		snapshots := &mock.SnapshotService{
			FindSnapshotsFn: func(context.Context, rentcheck.SnapshotFilter) ([]*rentcheck.Snapshot, error) {
				return []*rentcheck.Snapshot{{ID: "snap-0", ContentHash: "abcd"}}, nil
			},
			CreateSnapshotFn: func(_ context.Context, snap *rentcheck.Snapshot) error {
				snap.ID = "snap-1"
				snap.ContentHash = "abcd"
				return nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     &bytes.Buffer{},
			Search:     "mission.html",
			Reconciler: stubReconciler(rentcheck.ListingSummary{ListingID: "1"}),
			Snapshots:  snapshots,
		}

		err := (&main.SaveCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Unchanged since snapshot snap-0")
	})

	t.Run("does not store anything when the pipeline fails", func(t *testing.T) {
		t.Parallel()

		r := stubReconciler()
		r.Search = &mock.SearchExtractor{
			ExtractSummariesFn: func(string) ([]rentcheck.ListingSummary, error) {
				return nil, rentcheck.Errorf(rentcheck.EPARSE, "found 3 prices but 2 listing cards")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     &bytes.Buffer{},
			Stderr:     stderr,
			Search:     "mission.html",
			Reconciler: r,
			Snapshots:  &mock.SnapshotService{},
		}

		err := (&main.SaveCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, rentcheck.EPARSE, rentcheck.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: found 3 prices but 2 listing cards")
	})
}

func TestCheckCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports when every license is acceptable", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     &bytes.Buffer{},
			Reconciler: stubReconciler(rentcheck.ListingSummary{ListingID: "1"}, rentcheck.ListingSummary{ListingID: "2"}),
		}

		err := (&main.CheckCmd{Strict: true}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "All 2 licenses are valid")
	})
}
