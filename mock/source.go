package mock

import (
	"context"

	"github.com/fwojciec/rentcheck"
)

var _ rentcheck.DocumentSource = (*DocumentSource)(nil)

// DocumentSource is a mock implementation of rentcheck.DocumentSource.
type DocumentSource struct {
	SearchDocumentFn func(ctx context.Context, name string) (string, error)
	DetailDocumentFn func(ctx context.Context, listingID string) (string, error)
}

func (s *DocumentSource) SearchDocument(ctx context.Context, name string) (string, error) {
	return s.SearchDocumentFn(ctx, name)
}

func (s *DocumentSource) DetailDocument(ctx context.Context, listingID string) (string, error) {
	return s.DetailDocumentFn(ctx, listingID)
}
