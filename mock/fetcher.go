package mock

import (
	"context"

	"github.com/fwojciec/lunchmenu"
)

var _ lunchmenu.DocumentFetcher = (*DocumentFetcher)(nil)

// DocumentFetcher is a mock implementation of lunchmenu.DocumentFetcher.
type DocumentFetcher struct {
	FetchFn func(ctx context.Context, url string) (*lunchmenu.Document, error)
	CloseFn func() error
}

func (f *DocumentFetcher) Fetch(ctx context.Context, url string) (*lunchmenu.Document, error) {
	return f.FetchFn(ctx, url)
}

func (f *DocumentFetcher) Close() error {
	return f.CloseFn()
}

var _ lunchmenu.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of lunchmenu.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
