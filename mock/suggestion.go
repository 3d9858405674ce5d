package mock

import (
	"context"

	"github.com/fwojciec/lunchmenu"
)

var _ lunchmenu.SuggestionService = (*SuggestionService)(nil)

// SuggestionService is a mock implementation of lunchmenu.SuggestionService.
type SuggestionService struct {
	CreateSuggestionFn func(ctx context.Context, s *lunchmenu.Suggestion) error
	FindSuggestionsFn  func(ctx context.Context) ([]*lunchmenu.Suggestion, error)
	DeleteSuggestionFn func(ctx context.Context, id string) error
}

func (s *SuggestionService) CreateSuggestion(ctx context.Context, sg *lunchmenu.Suggestion) error {
	return s.CreateSuggestionFn(ctx, sg)
}

func (s *SuggestionService) FindSuggestions(ctx context.Context) ([]*lunchmenu.Suggestion, error) {
	return s.FindSuggestionsFn(ctx)
}

func (s *SuggestionService) DeleteSuggestion(ctx context.Context, id string) error {
	return s.DeleteSuggestionFn(ctx, id)
}
