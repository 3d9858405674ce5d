package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lunchmenu"
)

// Ensure LoggingCalorieService implements lunchmenu.CalorieService.
var _ lunchmenu.CalorieService = (*LoggingCalorieService)(nil)

// LoggingCalorieService wraps a CalorieService with debug logging.
type LoggingCalorieService struct {
	next   lunchmenu.CalorieService
	logger *slog.Logger
}

// NewLoggingCalorieService creates a new LoggingCalorieService.
func NewLoggingCalorieService(next lunchmenu.CalorieService, logger *slog.Logger) *LoggingCalorieService {
	return &LoggingCalorieService{next: next, logger: logger}
}

// Calories delegates to the wrapped service and logs the lookup.
func (s *LoggingCalorieService) Calories(ctx context.Context, dish string) (kcal int, err error) {
	defer func(begin time.Time) {
		s.logger.DebugContext(ctx, "calorie lookup",
			"dish", dish,
			"kcal", kcal,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Calories(ctx, dish)
}
