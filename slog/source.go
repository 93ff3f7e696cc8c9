// Package slog decorates rentcheck services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/rentcheck"
)

// Ensure LoggingDocumentSource implements rentcheck.DocumentSource.
var _ rentcheck.DocumentSource = (*LoggingDocumentSource)(nil)

// LoggingDocumentSource wraps a DocumentSource with logging.
type LoggingDocumentSource struct {
	next   rentcheck.DocumentSource
	logger *slog.Logger
}

// NewLoggingDocumentSource creates a new LoggingDocumentSource.
func NewLoggingDocumentSource(next rentcheck.DocumentSource, logger *slog.Logger) *LoggingDocumentSource {
	return &LoggingDocumentSource{next: next, logger: logger}
}

// SearchDocument delegates to the wrapped source and logs the read.
func (s *LoggingDocumentSource) SearchDocument(ctx context.Context, name string) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("read search page",
			"name", name,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchDocument(ctx, name)
}

// DetailDocument delegates to the wrapped source and logs the read.
func (s *LoggingDocumentSource) DetailDocument(ctx context.Context, listingID string) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("read detail page",
			"listing", listingID,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DetailDocument(ctx, listingID)
}
