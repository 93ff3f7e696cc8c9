// Package etree writes listings as an XML document.
package etree

import (
	"io"
	"strconv"

	"github.com/beevik/etree"
	"github.com/fwojciec/rentcheck"
)

// Ensure Exporter implements rentcheck.ListingExporter at compile time.
var _ rentcheck.ListingExporter = (*Exporter)(nil)

// Exporter writes a <listings> document with one <listing> element per
// listing, cheapest first.
type Exporter struct {
	// Indent is the number of spaces per nesting level. Zero disables
	// indentation.
	Indent int
}

// NewExporter creates an Exporter with two-space indentation.
func NewExporter() *Exporter {
	return &Exporter{Indent: 2}
}

func (e *Exporter) ExportListings(w io.Writer, listings []*rentcheck.Listing) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("listings")
	for _, l := range rentcheck.SortByCost(listings) {
		el := root.CreateElement("listing")
		el.CreateAttr("id", l.ListingID)
		el.CreateElement("title").SetText(l.Title)
		el.CreateElement("cost").SetText(strconv.Itoa(l.Cost))
		el.CreateElement("policyNumber").SetText(l.License)
		el.CreateElement("placeType").SetText(l.RoomType.String())
		el.CreateElement("bedrooms").SetText(strconv.Itoa(l.Bedrooms))
	}

	if e.Indent > 0 {
		doc.Indent(e.Indent)
	}
	_, err := doc.WriteTo(w)
	return err
}
