package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lunchmenu"
)

// Ensure LoggingExtractor implements lunchmenu.MenuExtractor.
var _ lunchmenu.MenuExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a MenuExtractor with logging.
type LoggingExtractor struct {
	next   lunchmenu.MenuExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next lunchmenu.MenuExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractMenu delegates to the wrapped extractor and logs the outcome.
// Failures are logged with their error code at warn level.
func (e *LoggingExtractor) ExtractMenu(doc *lunchmenu.Document) (meals []*lunchmenu.Meal, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		var code string
		if err != nil {
			level = slog.LevelWarn
			code = lunchmenu.ErrorCode(err)
		}
		e.logger.Log(context.Background(), level, "extract",
			"url", doc.URL,
			"kind", doc.Kind,
			"meals", len(meals),
			"code", code,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractMenu(doc)
}
