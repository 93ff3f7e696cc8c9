// Package xxhash computes content hashes of listing sets.
package xxhash

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/rentcheck"
)

// Field and record separators. Neither can appear in extracted text after
// whitespace collapsing.
const (
	unitSep   = "\x1f"
	recordSep = "\x1e"
)

// HashListings returns the 64-bit xxHash of the listings, in order, as 16
// hex digits. Equal hashes mean the same records in the same order.
func HashListings(listings []*rentcheck.Listing) string {
	d := xxhash.New()
	for _, l := range listings {
		for _, field := range []string{
			l.ListingID,
			l.Title,
			strconv.Itoa(l.Cost),
			l.License,
			l.RoomType.String(),
			strconv.Itoa(l.Bedrooms),
		} {
			_, _ = d.WriteString(field)
			_, _ = d.WriteString(unitSep)
		}
		_, _ = d.WriteString(recordSep)
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
