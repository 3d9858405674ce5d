package mock

import (
	"context"
	"time"

	"github.com/fwojciec/lunchmenu"
)

var _ lunchmenu.MenuCache = (*MenuCache)(nil)

// MenuCache is a mock implementation of lunchmenu.MenuCache.
type MenuCache struct {
	FindMenuFn        func(ctx context.Context, restaurantID, key string) (*lunchmenu.Menu, error)
	SaveMenuFn        func(ctx context.Context, key string, menu *lunchmenu.Menu) error
	CacheBusterFn     func(ctx context.Context) (int64, error)
	BumpCacheBusterFn func(ctx context.Context) (int64, error)
}

func (c *MenuCache) FindMenu(ctx context.Context, restaurantID, key string) (*lunchmenu.Menu, error) {
	return c.FindMenuFn(ctx, restaurantID, key)
}

func (c *MenuCache) SaveMenu(ctx context.Context, key string, menu *lunchmenu.Menu) error {
	return c.SaveMenuFn(ctx, key, menu)
}

func (c *MenuCache) CacheBuster(ctx context.Context) (int64, error) {
	return c.CacheBusterFn(ctx)
}

func (c *MenuCache) BumpCacheBuster(ctx context.Context) (int64, error) {
	return c.BumpCacheBusterFn(ctx)
}

var _ lunchmenu.MenuPublisher = (*MenuPublisher)(nil)

// MenuPublisher is a mock implementation of lunchmenu.MenuPublisher.
type MenuPublisher struct {
	PublishFn func(ctx context.Context, day time.Time, menus []*lunchmenu.Menu) ([]string, error)
}

func (p *MenuPublisher) Publish(ctx context.Context, day time.Time, menus []*lunchmenu.Menu) ([]string, error) {
	return p.PublishFn(ctx, day, menus)
}
