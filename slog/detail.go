package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/rentcheck"
)

// Ensure LoggingDetailService implements rentcheck.DetailService.
var _ rentcheck.DetailService = (*LoggingDetailService)(nil)

// LoggingDetailService wraps a DetailService with logging. Failures are
// logged at warn level so they show up without --verbose.
type LoggingDetailService struct {
	next   rentcheck.DetailService
	logger *slog.Logger
}

// NewLoggingDetailService creates a new LoggingDetailService.
func NewLoggingDetailService(next rentcheck.DetailService, logger *slog.Logger) *LoggingDetailService {
	return &LoggingDetailService{next: next, logger: logger}
}

// FindListingDetail delegates to the wrapped service and logs the result.
func (s *LoggingDetailService) FindListingDetail(ctx context.Context, listingID string) (detail *rentcheck.ListingDetail, err error) {
	defer func(begin time.Time) {
		if err != nil {
			s.logger.Warn("listing detail",
				"listing", listingID,
				"code", rentcheck.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		s.logger.Info("listing detail",
			"listing", listingID,
			"license", detail.License,
			"room", detail.RoomType.String(),
			"bedrooms", detail.Bedrooms,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.FindListingDetail(ctx, listingID)
}
