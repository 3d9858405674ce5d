// Package http provides an HTTP-based implementation of lunchmenu.DocumentFetcher
// for menu pages and PDFs that don't require JavaScript rendering, and a
// FoodData Central client for calorie estimates.
package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/lunchmenu"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// DefaultMaxBytes is the largest document the fetcher accepts.
const DefaultMaxBytes = 8 << 20

// DefaultUserAgent identifies the fetcher to restaurant sites.
const DefaultUserAgent = "lunchmenu-bot/1.0 (+https://github.com/fwojciec/lunchmenu)"

const acceptHeader = "text/html,application/xhtml+xml,application/pdf;q=0.9,*/*;q=0.8"

// Ensure Fetcher implements lunchmenu.DocumentFetcher at compile time.
var _ lunchmenu.DocumentFetcher = (*Fetcher)(nil)

// Fetcher retrieves menu documents using plain HTTP requests.
// HTML bodies are transcoded to UTF-8 from whatever charset the server
// declares (Czech sites often still serve windows-1250).
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	maxBytes  int64
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBytes sets the size ceiling for fetched documents.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithClient replaces the underlying HTTP client. The timeout option is
// ignored when a client is supplied.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		maxBytes:  DefaultMaxBytes,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// Fetch retrieves the document at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*lunchmenu.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, lunchmenu.Errorf(lunchmenu.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, lunchmenu.Errorf(lunchmenu.EFETCH, "request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, lunchmenu.Errorf(lunchmenu.EFETCH, "HTTP %d", resp.StatusCode)
	}

	if resp.ContentLength > f.maxBytes {
		return nil, tooLarge(f.maxBytes)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, lunchmenu.Errorf(lunchmenu.EFETCH, "read body: %v", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, tooLarge(f.maxBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	doc := &lunchmenu.Document{
		URL:         resp.Request.URL.String(),
		Kind:        lunchmenu.DetectKind(url, contentType, body),
		ContentType: contentType,
		Body:        body,
	}

	if doc.Kind == lunchmenu.KindHTML {
		utf8Body, err := toUTF8(body, contentType)
		if err != nil {
			return nil, lunchmenu.Errorf(lunchmenu.EFETCH, "decode body: %v", err)
		}
		doc.Body = utf8Body
	}

	return doc, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// toUTF8 converts an HTML body to UTF-8 using the declared or sniffed charset.
// Bodies that already are valid UTF-8 are returned as is.
func toUTF8(body []byte, contentType string) ([]byte, error) {
	if utf8.Valid(body) {
		return body, nil
	}
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

func tooLarge(limit int64) error {
	return lunchmenu.Errorf(lunchmenu.ETOOLARGE, "document exceeds the %s limit", humanBytes(limit))
}

func humanBytes(n int64) string {
	if n >= 1<<20 {
		return fmt.Sprintf("%d MB", n>>20)
	}
	return fmt.Sprintf("%d B", n)
}
