package rentcheck

import (
	"context"
	"strconv"
)

// License values that stand in for a literal license string.
const (
	LicensePending = "Pending"
	LicenseExempt  = "Exempt"
)

// RoomType is the category of space a listing rents out.
type RoomType int

// Room types. RoomTypeEntire is the fallback when the subtitle names neither
// a private nor a shared room.
const (
	RoomTypeEntire RoomType = iota
	RoomTypePrivate
	RoomTypeShared
)

// String returns the display name used in exports.
func (t RoomType) String() string {
	switch t {
	case RoomTypePrivate:
		return "Private Room"
	case RoomTypeShared:
		return "Shared Room"
	case RoomTypeEntire:
		return "Entire Room"
	}
	return "RoomType(" + strconv.Itoa(int(t)) + ")"
}

// ParseRoomType converts a display name back into a RoomType.
func ParseRoomType(s string) (RoomType, error) {
	switch s {
	case "Entire Room":
		return RoomTypeEntire, nil
	case "Private Room":
		return RoomTypePrivate, nil
	case "Shared Room":
		return RoomTypeShared, nil
	}
	return 0, Errorf(EINVALID, "unknown room type %q", s)
}

// MarshalText encodes the room type as its display name.
func (t RoomType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a display name produced by MarshalText.
func (t *RoomType) UnmarshalText(text []byte) error {
	v, err := ParseRoomType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ListingSummary is what a search-results page says about one listing.
type ListingSummary struct {
	Title     string `json:"title"`
	Cost      int    `json:"cost"`
	ListingID string `json:"listingId"`
}

// ListingDetail is what a listing's own page says about it.
type ListingDetail struct {
	// License is a literal license string, LicensePending or LicenseExempt.
	License  string   `json:"license"`
	RoomType RoomType `json:"roomType"`
	Bedrooms int      `json:"bedrooms"`
}

// Listing is the composite record for one listing id.
type Listing struct {
	Title     string   `json:"title"`
	Cost      int      `json:"cost"`
	ListingID string   `json:"listingId"`
	License   string   `json:"license"`
	RoomType  RoomType `json:"roomType"`
	Bedrooms  int      `json:"bedrooms"`
}

// NewListing joins a summary and the detail found for the same listing id.
func NewListing(s ListingSummary, d *ListingDetail) *Listing {
	return &Listing{
		Title:     s.Title,
		Cost:      s.Cost,
		ListingID: s.ListingID,
		License:   d.License,
		RoomType:  d.RoomType,
		Bedrooms:  d.Bedrooms,
	}
}

// Validate returns an error if the listing contains invalid fields.
func (l *Listing) Validate() error {
	if l.ListingID == "" {
		return Errorf(EINVALID, "listing ID required")
	}
	if l.Cost < 0 {
		return Errorf(EINVALID, "listing %s: negative cost", l.ListingID)
	}
	if l.Bedrooms < 0 {
		return Errorf(EINVALID, "listing %s: negative bedroom count", l.ListingID)
	}
	return nil
}

// DocumentSource supplies stored marketplace pages as raw HTML.
type DocumentSource interface {
	// SearchDocument returns the search-results page stored under name.
	// Returns ENOTFOUND if the page does not exist.
	SearchDocument(ctx context.Context, name string) (string, error)

	// DetailDocument returns the detail page for a listing id.
	// The location is derived from the id alone.
	// Returns ENOTFOUND if the page does not exist.
	DetailDocument(ctx context.Context, listingID string) (string, error)
}

// SearchExtractor reads listing summaries from a search-results page.
type SearchExtractor interface {
	// ExtractSummaries returns one summary per listing card, in page order.
	// Returns EPARSE if the page does not have the expected shape.
	ExtractSummaries(html string) ([]ListingSummary, error)
}

// DetailService looks up the detail page for a listing.
type DetailService interface {
	// FindListingDetail resolves and parses the detail page for listingID.
	// Returns ENOTFOUND, EPARSE or ERANGE depending on what went wrong.
	FindListingDetail(ctx context.Context, listingID string) (*ListingDetail, error)
}
