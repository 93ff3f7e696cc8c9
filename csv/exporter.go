// Package csv writes listings as comma-separated values.
package csv

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/fwojciec/rentcheck"
)

// Ensure Exporter implements rentcheck.ListingExporter at compile time.
var _ rentcheck.ListingExporter = (*Exporter)(nil)

// Exporter writes a header row and one row per listing, cheapest first.
type Exporter struct{}

// NewExporter creates a new Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

func (e *Exporter) ExportListings(w io.Writer, listings []*rentcheck.Listing) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rentcheck.ExportHeader); err != nil {
		return err
	}

	for _, l := range rentcheck.SortByCost(listings) {
		if err := cw.Write(Record(l)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Record returns the export columns for l in ExportHeader order.
func Record(l *rentcheck.Listing) []string {
	return []string{
		l.Title,
		strconv.Itoa(l.Cost),
		l.ListingID,
		l.License,
		l.RoomType.String(),
		strconv.Itoa(l.Bedrooms),
	}
}
