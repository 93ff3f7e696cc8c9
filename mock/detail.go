package mock

import (
	"context"

	"github.com/fwojciec/rentcheck"
)

var _ rentcheck.DetailService = (*DetailService)(nil)

// DetailService is a mock implementation of rentcheck.DetailService.
type DetailService struct {
	FindListingDetailFn func(ctx context.Context, listingID string) (*rentcheck.ListingDetail, error)
}

func (s *DetailService) FindListingDetail(ctx context.Context, listingID string) (*rentcheck.ListingDetail, error) {
	return s.FindListingDetailFn(ctx, listingID)
}
