// Package rod fetches menu pages that are assembled by JavaScript, using a
// headless Chrome driven by github.com/go-rod/rod.
package rod

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/lunchmenu"
	"github.com/go-rod/rod"
)

// Ensure Fetcher implements lunchmenu.DocumentFetcher at compile time.
var _ lunchmenu.DocumentFetcher = (*Fetcher)(nil)

// DefaultSettle is how long a loaded page may keep running scripts before
// its DOM is read.
const DefaultSettle = 2 * time.Second

// DefaultMaxBytes caps the size of rendered markup.
const DefaultMaxBytes = 8 << 20

// Fetcher retrieves rendered HTML from the browser of a BrowserManager.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager  *BrowserManager
	settle   time.Duration
	maxBytes int
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithSettle sets how long to wait for scripts after the load event.
func WithSettle(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// WithMaxBytes sets the rendered markup size limit.
func WithMaxBytes(n int) FetcherOption {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// NewFetcher creates a Fetcher rendering pages in manager's browser. The
// browser starts with the first Fetch. Closing the Fetcher closes the manager.
func NewFetcher(manager *BrowserManager, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		manager:  manager,
		settle:   DefaultSettle,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to url, lets its scripts run and returns the rendered DOM
// as an HTML document.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*lunchmenu.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := f.manager.Page()
	if err != nil {
		return nil, err
	}
	defer page.Close()

	html, err := render(page.Context(ctx), url, f.settle)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, lunchmenu.Errorf(lunchmenu.EFETCH, "render %s: %v", url, err)
	}

	if f.maxBytes > 0 && len(html) > f.maxBytes {
		return nil, lunchmenu.Errorf(lunchmenu.ETOOLARGE, "rendered page exceeds %d bytes", f.maxBytes)
	}

	return &lunchmenu.Document{
		URL:         url,
		Kind:        lunchmenu.KindHTML,
		ContentType: "text/html; charset=utf-8",
		Body:        []byte(html),
	}, nil
}

// render loads url in page and returns the DOM once scripts have settled.
func render(page *rod.Page, url string, settle time.Duration) (string, error) {
	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if settle > 0 {
		// Pages that never go idle are read as they are.
		_ = page.WaitIdle(settle)
	}
	return page.HTML()
}

// Close shuts the browser down.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
