package mock

import "github.com/fwojciec/rentcheck"

var _ rentcheck.SearchExtractor = (*SearchExtractor)(nil)

// SearchExtractor is a mock implementation of rentcheck.SearchExtractor.
type SearchExtractor struct {
	ExtractSummariesFn func(html string) ([]rentcheck.ListingSummary, error)
}

func (e *SearchExtractor) ExtractSummaries(html string) ([]rentcheck.ListingSummary, error) {
	return e.ExtractSummariesFn(html)
}
