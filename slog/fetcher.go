package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lunchmenu"
)

// Ensure LoggingFetcher implements lunchmenu.DocumentFetcher.
var _ lunchmenu.DocumentFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a DocumentFetcher with logging.
type LoggingFetcher struct {
	next   lunchmenu.DocumentFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next lunchmenu.DocumentFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (doc *lunchmenu.Document, err error) {
	defer func(begin time.Time) {
		var kind lunchmenu.SourceKind
		var size int
		if doc != nil {
			kind, size = doc.Kind, len(doc.Body)
		}
		f.logger.Info("fetch",
			"url", url,
			"kind", kind,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
