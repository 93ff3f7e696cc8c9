package rentcheck

import (
	"io"
	"slices"
)

// ExportHeader is the column header of a tabular export.
var ExportHeader = []string{
	"Listing Title",
	"Cost",
	"Listing ID",
	"Policy Number",
	"Place Type",
	"Number of Bedrooms",
}

// ListingExporter writes listings as a table.
type ListingExporter interface {
	// ExportListings writes ExportHeader followed by one row per listing,
	// ordered by ascending cost. Listings with equal cost keep their order.
	ExportListings(w io.Writer, listings []*Listing) error
}

// SortByCost returns a copy of listings stably sorted by ascending cost.
func SortByCost(listings []*Listing) []*Listing {
	sorted := slices.Clone(listings)
	slices.SortStableFunc(sorted, func(a, b *Listing) int {
		return a.Cost - b.Cost
	})
	return sorted
}
