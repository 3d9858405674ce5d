package lunchmenu

import (
	"bytes"
	"context"
	"mime"
	"net/url"
	"path"
	"strings"
)

// SourceKind identifies how a menu document is encoded.
type SourceKind string

// Supported source kinds. KindUnknown means the kind is detected on fetch.
const (
	KindUnknown SourceKind = ""
	KindHTML    SourceKind = "html"
	KindPDF     SourceKind = "pdf"
	KindImage   SourceKind = "image"
)

// Valid reports whether k is a known kind or KindUnknown.
func (k SourceKind) Valid() bool {
	switch k {
	case KindUnknown, KindHTML, KindPDF, KindImage:
		return true
	}
	return false
}

// Document is a fetched menu source. Body is raw PDF bytes or HTML markup
// already decoded to UTF-8.
type Document struct {
	URL         string
	Kind        SourceKind
	ContentType string
	Body        []byte
}

// DocumentFetcher retrieves menu documents.
type DocumentFetcher interface {
	// Fetch downloads the document at url. Failures carry EFETCH or ETOOLARGE.
	Fetch(ctx context.Context, url string) (*Document, error)

	// Close releases resources held by the fetcher.
	Close() error
}

// LineSource reduces a document to ordered, normalized text lines.
// It is the only input contract the Parser requires.
type LineSource interface {
	Lines(doc *Document) ([]string, error)
}

// LinkFinder discovers links to menu documents on an HTML page.
type LinkFinder interface {
	// MenuLinks returns absolute URLs that likely lead to a menu, most
	// promising first.
	MenuLinks(doc *Document) ([]string, error)
}

// TextExtractor pulls the raw text layer out of a PDF.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// MenuExtractor turns a document into finalized meals.
// It returns EUNSUPPORTED, ETOOLARGE, ENOTEXT or EEMPTY when no meals can be produced.
type MenuExtractor interface {
	ExtractMenu(doc *Document) ([]*Meal, error)
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
}

// KindFromURL guesses the source kind from the URL path extension.
// Returns KindUnknown when the extension says nothing.
func KindFromURL(rawURL string) SourceKind {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	ext := strings.ToLower(path.Ext(p))
	switch {
	case ext == ".pdf":
		return KindPDF
	case imageExtensions[ext]:
		return KindImage
	case ext == ".html" || ext == ".htm" || ext == ".php":
		return KindHTML
	}
	return KindUnknown
}

// DetectKind determines the kind of a fetched document from its magic bytes,
// its Content-Type header and finally its URL. Anything unrecognized is
// treated as HTML.
func DetectKind(rawURL, contentType string, body []byte) SourceKind {
	if bytes.HasPrefix(body, []byte("%PDF-")) {
		return KindPDF
	}

	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		switch {
		case mt == "application/pdf":
			return KindPDF
		case strings.HasPrefix(mt, "image/"):
			return KindImage
		case mt == "text/html" || mt == "application/xhtml+xml":
			return KindHTML
		}
	}

	if k := KindFromURL(rawURL); k != KindUnknown {
		return k
	}
	return KindHTML
}

// DomainLimiter provides per-host rate limiting.
type DomainLimiter interface {
	// Wait blocks until a request to host is allowed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
