package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/rentcheck"
)

// Ensure SearchExtractor implements rentcheck.SearchExtractor at compile time.
var _ rentcheck.SearchExtractor = (*SearchExtractor)(nil)

var (
	// priceRe accepts whole dollars only: no cents, no separators.
	priceRe = regexp.MustCompile(`^\$(\d+)$`)
	// listingIDRe takes the trailing digits of a card attribute like "title_1944564".
	listingIDRe = regexp.MustCompile(`^\D+(\d+)$`)
)

// SearchSelectors locate listing data on a search-results page.
type SearchSelectors struct {
	// Card matches the element holding a listing's title.
	Card string
	// IDAttr is the card attribute that ends in the listing id.
	IDAttr string
	// Price matches the element holding a listing's nightly cost.
	Price string
}

// DefaultSearchSelectors match the marketplace's search-results markup.
var DefaultSearchSelectors = SearchSelectors{
	Card:   "div.t1jojoys.dir.dir-ltr",
	IDAttr: "id",
	Price:  "span._tyxjp1",
}

// SearchExtractor reads listing summaries from search-results pages.
type SearchExtractor struct {
	selectors SearchSelectors
}

// NewSearchExtractor creates a SearchExtractor using DefaultSearchSelectors.
func NewSearchExtractor() *SearchExtractor {
	return NewSearchExtractorWithSelectors(DefaultSearchSelectors)
}

// NewSearchExtractorWithSelectors creates a SearchExtractor for different markup.
func NewSearchExtractorWithSelectors(selectors SearchSelectors) *SearchExtractor {
	return &SearchExtractor{selectors: selectors}
}

type card struct {
	title string
	id    string
}

// ExtractSummaries returns one summary per listing card in page order.
//
// Prices and cards are paired by position. Cards whose id attribute does not
// end in digits are skipped, so a page with such a card ends up with more
// prices than cards; that mismatch is reported as EPARSE rather than pairing
// the wrong price with the wrong listing.
func (e *SearchExtractor) ExtractSummaries(html string) ([]rentcheck.ListingSummary, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	prices, err := e.prices(doc)
	if err != nil {
		return nil, err
	}
	cards := e.cards(doc)

	if len(prices) != len(cards) {
		return nil, rentcheck.Errorf(rentcheck.EPARSE,
			"found %d prices but %d listing cards", len(prices), len(cards))
	}

	summaries := make([]rentcheck.ListingSummary, 0, len(cards))
	for i, c := range cards {
		summaries = append(summaries, rentcheck.ListingSummary{
			Title:     c.title,
			Cost:      prices[i],
			ListingID: c.id,
		})
	}
	return summaries, nil
}

func (e *SearchExtractor) prices(doc *goquery.Document) ([]int, error) {
	var prices []int
	var err error
	doc.Find(e.selectors.Price).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		m := priceRe.FindStringSubmatch(text)
		if m == nil {
			err = rentcheck.Errorf(rentcheck.EPARSE, "unexpected price %q", text)
			return false
		}
		cost, convErr := strconv.Atoi(m[1])
		if convErr != nil {
			err = rentcheck.Errorf(rentcheck.EPARSE, "price %q out of range", text)
			return false
		}
		prices = append(prices, cost)
		return true
	})
	return prices, err
}

func (e *SearchExtractor) cards(doc *goquery.Document) []card {
	var cards []card
	doc.Find(e.selectors.Card).Each(func(_ int, sel *goquery.Selection) {
		attr, _ := sel.Attr(e.selectors.IDAttr)
		m := listingIDRe.FindStringSubmatch(attr)
		if m == nil {
			return
		}
		cards = append(cards, card{
			title: collapseWhitespace(sel.Text()),
			id:    m[1],
		})
	})
	return cards
}
