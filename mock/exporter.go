package mock

import (
	"io"

	"github.com/fwojciec/rentcheck"
)

var _ rentcheck.ListingExporter = (*ListingExporter)(nil)

// ListingExporter is a mock implementation of rentcheck.ListingExporter.
type ListingExporter struct {
	ExportListingsFn func(w io.Writer, listings []*rentcheck.Listing) error
}

func (e *ListingExporter) ExportListings(w io.Writer, listings []*rentcheck.Listing) error {
	return e.ExportListingsFn(w, listings)
}
