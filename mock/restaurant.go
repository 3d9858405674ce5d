package mock

import (
	"context"

	"github.com/fwojciec/lunchmenu"
)

var _ lunchmenu.RestaurantService = (*RestaurantService)(nil)

// RestaurantService is a mock implementation of lunchmenu.RestaurantService.
type RestaurantService struct {
	CreateRestaurantFn   func(ctx context.Context, r *lunchmenu.Restaurant) error
	FindRestaurantByIDFn func(ctx context.Context, id string) (*lunchmenu.Restaurant, error)
	FindRestaurantsFn    func(ctx context.Context, filter lunchmenu.RestaurantFilter) ([]*lunchmenu.Restaurant, error)
	UpdateRestaurantFn   func(ctx context.Context, id string, upd lunchmenu.RestaurantUpdate) (*lunchmenu.Restaurant, error)
	DeleteRestaurantFn   func(ctx context.Context, id string) error
}

func (s *RestaurantService) CreateRestaurant(ctx context.Context, r *lunchmenu.Restaurant) error {
	return s.CreateRestaurantFn(ctx, r)
}

func (s *RestaurantService) FindRestaurantByID(ctx context.Context, id string) (*lunchmenu.Restaurant, error) {
	return s.FindRestaurantByIDFn(ctx, id)
}

func (s *RestaurantService) FindRestaurants(ctx context.Context, filter lunchmenu.RestaurantFilter) ([]*lunchmenu.Restaurant, error) {
	return s.FindRestaurantsFn(ctx, filter)
}

func (s *RestaurantService) UpdateRestaurant(ctx context.Context, id string, upd lunchmenu.RestaurantUpdate) (*lunchmenu.Restaurant, error) {
	return s.UpdateRestaurantFn(ctx, id, upd)
}

func (s *RestaurantService) DeleteRestaurant(ctx context.Context, id string) error {
	return s.DeleteRestaurantFn(ctx, id)
}
