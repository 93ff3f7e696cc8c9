package goquery

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/rentcheck"
)

// Ensure DetailService implements rentcheck.DetailService at compile time.
var _ rentcheck.DetailService = (*DetailService)(nil)

var digitRe = regexp.MustCompile(`\d`)

// secondNumericAmenityItem is the position of the bedroom count among the
// digits found in the amenity-count items: guests come first, bedrooms next.
// A listing without a bedroom item ("Studio") shifts the next count into
// this slot; that is how the marketplace data has always been read.
const secondNumericAmenityItem = 1

// DetailSelectors locate listing data on a listing's detail page.
type DetailSelectors struct {
	License  string
	Subtitle string
	Amenity  string
}

// DefaultDetailSelectors match the marketplace's detail-page markup.
var DefaultDetailSelectors = DetailSelectors{
	License:  "li.f19phm7j.dir.dir-ltr",
	Subtitle: "h2._14i3z6h",
	Amenity:  "li.l7n4lsf.dir.dir-ltr",
}

// ParseDetail extracts license, room type and bedroom count from a detail
// page using DefaultDetailSelectors.
func ParseDetail(html string) (*rentcheck.ListingDetail, error) {
	return ParseDetailWithSelectors(html, DefaultDetailSelectors)
}

// ParseDetailWithSelectors is like ParseDetail but for different markup.
func ParseDetailWithSelectors(html string, selectors DetailSelectors) (*rentcheck.ListingDetail, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	license, err := parseLicense(doc, selectors.License)
	if err != nil {
		return nil, err
	}

	subtitle := doc.Find(selectors.Subtitle).First()
	if subtitle.Length() == 0 {
		return nil, rentcheck.Errorf(rentcheck.EPARSE, "listing subtitle not found")
	}

	bedrooms, err := parseBedrooms(doc, selectors.Amenity)
	if err != nil {
		return nil, err
	}

	return &rentcheck.ListingDetail{
		License:  rentcheck.ClassifyLicense(license),
		RoomType: rentcheck.ClassifyRoomType(subtitle.Text()),
		Bedrooms: bedrooms,
	}, nil
}

// parseLicense returns the text after the first colon of the license item,
// e.g. "Policy number: STR-0001541" yields "STR-0001541".
func parseLicense(doc *goquery.Document, selector string) (string, error) {
	item := doc.Find(selector).First()
	if item.Length() == 0 {
		return "", rentcheck.Errorf(rentcheck.EPARSE, "license item not found")
	}

	_, value, ok := strings.Cut(item.Text(), ":")
	if !ok {
		return "", rentcheck.Errorf(rentcheck.EPARSE, "license item %q has no label", strings.TrimSpace(item.Text()))
	}
	return strings.TrimSpace(value), nil
}

func parseBedrooms(doc *goquery.Document, selector string) (int, error) {
	var counts []int
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		digit := digitRe.FindString(stripWhitespaceRuns(sel.Text()))
		if digit == "" {
			return
		}
		n, _ := strconv.Atoi(digit)
		counts = append(counts, n)
	})

	if len(counts) <= secondNumericAmenityItem {
		return 0, rentcheck.Errorf(rentcheck.ERANGE,
			"need at least %d numeric amenity items, found %d", secondNumericAmenityItem+1, len(counts))
	}
	return counts[secondNumericAmenityItem], nil
}

// DetailService resolves detail pages through a DocumentSource and parses them.
type DetailService struct {
	source    rentcheck.DocumentSource
	selectors DetailSelectors
}

// NewDetailService creates a DetailService using DefaultDetailSelectors.
func NewDetailService(source rentcheck.DocumentSource) *DetailService {
	return &DetailService{source: source, selectors: DefaultDetailSelectors}
}

// FindListingDetail reads and parses the detail page for listingID.
func (s *DetailService) FindListingDetail(ctx context.Context, listingID string) (*rentcheck.ListingDetail, error) {
	html, err := s.source.DetailDocument(ctx, listingID)
	if err != nil {
		return nil, err
	}

	detail, err := ParseDetailWithSelectors(html, s.selectors)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", listingID, err)
	}
	return detail, nil
}
