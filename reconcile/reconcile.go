// Package reconcile joins search-result summaries with the detail pages of
// the listings they name.
package reconcile

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/fwojciec/rentcheck"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of detail pages resolved at once when
// Reconciler.Concurrency is not set.
const DefaultConcurrency = 4

// Reconciler builds composite listing records.
type Reconciler struct {
	Source      rentcheck.DocumentSource
	Search      rentcheck.SearchExtractor
	Details     rentcheck.DetailService
	Concurrency int

	// Progress, if set, is called after each listing's detail is resolved.
	// Calls may come from several goroutines.
	Progress ProgressFunc
}

// ProgressFunc reports that completed of total listings have been resolved.
type ProgressFunc func(completed, total int, listingID string)

// BuildDatabase reads the named search page and reconciles every listing on it.
func (r *Reconciler) BuildDatabase(ctx context.Context, searchName string) ([]*rentcheck.Listing, error) {
	html, err := r.Source.SearchDocument(ctx, searchName)
	if err != nil {
		return nil, err
	}

	summaries, err := r.Search.ExtractSummaries(html)
	if err != nil {
		return nil, fmt.Errorf("search page %s: %w", searchName, err)
	}

	return r.Reconcile(ctx, summaries)
}

// Reconcile looks up the detail for each summary and returns one listing per
// summary, in summary order. The first failing lookup aborts the rest and no
// listings are returned.
func (r *Reconciler) Reconcile(ctx context.Context, summaries []rentcheck.ListingSummary) ([]*rentcheck.Listing, error) {
	if err := checkUniqueIDs(summaries); err != nil {
		return nil, err
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	listings := make([]*rentcheck.Listing, len(summaries))
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, s := range summaries {
		i, s := i, s
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			detail, err := r.Details.FindListingDetail(gctx, s.ListingID)
			if err != nil {
				return err
			}
			listings[i] = rentcheck.NewListing(s, detail)

			n := completed.Add(1)
			if r.Progress != nil {
				r.Progress(int(n), len(summaries), s.ListingID)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return listings, nil
}

func checkUniqueIDs(summaries []rentcheck.ListingSummary) error {
	seen := make(map[string]struct{}, len(summaries))
	for _, s := range summaries {
		if _, ok := seen[s.ListingID]; ok {
			return rentcheck.Errorf(rentcheck.EINVALID, "duplicate listing id %s in search results", s.ListingID)
		}
		seen[s.ListingID] = struct{}{}
	}
	return nil
}
