package mock

import (
	"context"

	"github.com/fwojciec/lunchmenu"
)

var _ lunchmenu.CalorieService = (*CalorieService)(nil)

// CalorieService is a mock implementation of lunchmenu.CalorieService.
type CalorieService struct {
	CaloriesFn func(ctx context.Context, dish string) (int, error)
}

func (s *CalorieService) Calories(ctx context.Context, dish string) (int, error) {
	return s.CaloriesFn(ctx, dish)
}
