// Package collect gathers lunch menus from restaurant sources.
// It coordinates caching, rate-limited fetching with retry, extraction and
// fallback to alternate sources, and runs restaurants concurrently.
package collect

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/lunchmenu"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of restaurants collected at once.
const DefaultConcurrency = 8

// DefaultTimeout bounds a single fetch attempt.
const DefaultTimeout = 15 * time.Second

// DefaultMaxLinks is the number of discovered menu links followed per
// restaurant.
const DefaultMaxLinks = 3

// Collector produces menus for registered restaurants.
//
// Cache, RateLimiter, BrowserFetcher, LinkFinder and Logger are optional.
type Collector struct {
	Fetcher        lunchmenu.DocumentFetcher
	BrowserFetcher lunchmenu.DocumentFetcher
	Extractor      lunchmenu.MenuExtractor
	Cache          lunchmenu.MenuCache
	RateLimiter    lunchmenu.DomainLimiter
	LinkFinder     lunchmenu.LinkFinder
	MaxLinks       int
	Concurrency    int
	Timeout        time.Duration
	RetryDelays    []time.Duration
	Now            func() time.Time
	Logger         *slog.Logger
}

// ProgressEvent reports progress while collecting menus.
type ProgressEvent struct {
	Type       ProgressType
	Completed  int
	Total      int
	Restaurant string
	Failure    *lunchmenu.Failure
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting collection progress.
type ProgressFunc func(event ProgressEvent)

type collectResult struct {
	position int
	menu     *lunchmenu.Menu
}

// CollectAll collects menus for all restaurants concurrently and returns
// them in input order. A failing restaurant yields a menu carrying its
// Failure and never affects the others.
func (c *Collector) CollectAll(ctx context.Context, restaurants []*lunchmenu.Restaurant, progress ProgressFunc) []*lunchmenu.Menu {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan collectResult, len(restaurants))

	var completed atomic.Int64
	total := len(restaurants)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, r := range restaurants {
			i, r := i, r
			g.Go(func() error {
				resultCh <- collectResult{position: i, menu: c.Collect(gctx, r)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	menus := make([]*lunchmenu.Menu, len(restaurants))
	for result := range resultCh {
		completed.Add(1)
		menus[result.position] = result.menu

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:       ProgressCompleted,
			Completed:  int(completed.Load()),
			Total:      total,
			Restaurant: result.menu.Restaurant,
		}
		if result.menu.Failure != nil {
			event.Type = ProgressFailed
			event.Failure = result.menu.Failure
		}
		progress(event)
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return menus
}

// Collect returns today's menu for r. It never fails: errors, including a
// panic in an adapter, are reported in Menu.Failure.
//
// A cached menu for today is returned as is. Otherwise the primary source
// and then each alternate is fetched and extracted until one yields meals.
// If none does and a LinkFinder is set, menu links found on the HTML pages
// that parsed empty are tried next. When nothing yields meals, the menu
// carries the primary source's failure.
func (c *Collector) Collect(ctx context.Context, r *lunchmenu.Restaurant) (menu *lunchmenu.Menu) {
	now := c.now()
	menu = &lunchmenu.Menu{
		RestaurantID: r.ID,
		Restaurant:   r.Name,
		SourceURL:    r.URL,
		Kind:         r.DeclaredKind(),
		FetchedAt:    now,
	}

	defer func() {
		if p := recover(); p != nil {
			menu.Meals = nil
			menu.ContentHash = ""
			menu.Failure = &lunchmenu.Failure{Code: lunchmenu.EINTERNAL, Message: fmt.Sprintf("panic: %v", p)}
			c.logger().Error("collect panic", "restaurant", r.Name, "panic", p)
		}
	}()

	key, cached := c.lookup(ctx, r.ID, now)
	if cached != nil {
		return cached
	}

	var firstErr error
	var emptyPages []*lunchmenu.Document
	tried := make(map[string]bool)
	try := func(src string, kind lunchmenu.SourceKind) bool {
		tried[src] = true
		doc, meals, err := c.collectSource(ctx, r, src, kind)
		if err == nil {
			menu.SourceURL = src
			menu.Kind = doc.Kind
			menu.Meals = meals
			menu.ContentHash = ComputeHash(doc.Body)
			return true
		}
		if firstErr == nil {
			firstErr = err
		}
		if doc != nil && doc.Kind == lunchmenu.KindHTML && lunchmenu.ErrorCode(err) == lunchmenu.EEMPTY {
			emptyPages = append(emptyPages, doc)
		}
		return false
	}

	found := false
	for i, src := range r.Sources() {
		kind := lunchmenu.KindFromURL(src)
		if i == 0 {
			kind = r.DeclaredKind()
		}
		if found = try(src, kind); found || ctx.Err() != nil {
			break
		}
	}
	if !found && ctx.Err() == nil {
		for _, link := range c.menuLinks(r, emptyPages, tried) {
			if found = try(link, lunchmenu.KindFromURL(link)); found || ctx.Err() != nil {
				break
			}
		}
	}
	if !found {
		menu.Failure = lunchmenu.NewFailure(firstErr)
	}

	if cacheable(ctx, menu) {
		c.store(ctx, key, menu)
	}
	return menu
}

func (c *Collector) collectSource(ctx context.Context, r *lunchmenu.Restaurant, src string, kind lunchmenu.SourceKind) (*lunchmenu.Document, []*lunchmenu.Meal, error) {
	if kind == lunchmenu.KindImage {
		return nil, nil, lunchmenu.Errorf(lunchmenu.EUNSUPPORTED, "image menus are not supported")
	}

	fetcher := c.Fetcher
	if r.RenderJS && kind != lunchmenu.KindPDF && c.BrowserFetcher != nil {
		fetcher = c.BrowserFetcher
	}

	doc, err := c.fetch(ctx, fetcher, src)
	if err != nil {
		return nil, nil, err
	}

	meals, err := c.Extractor.ExtractMenu(doc)
	if err != nil {
		return doc, nil, err
	}
	return doc, meals, nil
}

// menuLinks returns up to MaxLinks untried menu links found on pages.
func (c *Collector) menuLinks(r *lunchmenu.Restaurant, pages []*lunchmenu.Document, tried map[string]bool) []string {
	if c.LinkFinder == nil {
		return nil
	}
	limit := c.MaxLinks
	if limit <= 0 {
		limit = DefaultMaxLinks
	}

	var links []string
	for _, page := range pages {
		found, err := c.LinkFinder.MenuLinks(page)
		if err != nil {
			c.logger().Debug("menu links", "restaurant", r.Name, "url", page.URL, "err", err)
			continue
		}
		for _, link := range found {
			if tried[link] {
				continue
			}
			tried[link] = true
			links = append(links, link)
			if len(links) == limit {
				return links
			}
		}
	}
	return links
}

func (c *Collector) fetch(ctx context.Context, fetcher lunchmenu.DocumentFetcher, src string) (*lunchmenu.Document, error) {
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	fetchFn := func(ctx context.Context, u string) (*lunchmenu.Document, error) {
		if c.RateLimiter != nil {
			if err := c.RateLimiter.Wait(ctx, hostOf(u)); err != nil {
				return nil, err
			}
		}
		timeout := c.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return fetcher.Fetch(ctx, u)
	}

	logFn := func(format string, args ...any) {
		c.logger().Debug(fmt.Sprintf(format, args...))
	}

	return FetchWithRetryDelays(ctx, src, fetchFn, logFn, delays)
}

// lookup returns today's cache key and the cached menu, if any.
// The key is empty when the cache is unavailable.
func (c *Collector) lookup(ctx context.Context, restaurantID string, now time.Time) (string, *lunchmenu.Menu) {
	if c.Cache == nil {
		return "", nil
	}

	buster, err := c.Cache.CacheBuster(ctx)
	if err != nil {
		c.logger().Warn("cache buster", "err", err)
		return "", nil
	}
	key := lunchmenu.CacheKey(now, buster)

	menu, err := c.Cache.FindMenu(ctx, restaurantID, key)
	if err != nil {
		if lunchmenu.ErrorCode(err) != lunchmenu.ENOTFOUND {
			c.logger().Warn("cache lookup", "restaurant", restaurantID, "err", err)
		}
		return key, nil
	}
	return key, menu
}

func (c *Collector) store(ctx context.Context, key string, menu *lunchmenu.Menu) {
	if c.Cache == nil || key == "" {
		return
	}
	if err := c.Cache.SaveMenu(ctx, key, menu); err != nil {
		c.logger().Warn("cache save", "restaurant", menu.RestaurantID, "err", err)
	}
}

// cacheable reports whether a menu should be kept for the rest of the day.
// Fetch failures are transient and are retried on the next request.
func cacheable(ctx context.Context, menu *lunchmenu.Menu) bool {
	if ctx.Err() != nil {
		return false
	}
	return menu.Failure == nil || menu.Failure.Code != lunchmenu.EFETCH
}

func (c *Collector) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Collector) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Host
}
