// Package fs reads menu documents from and exports menus to the local
// filesystem.
package fs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/lunchmenu"
	"golang.org/x/net/html/charset"
)

// Ensure Loader implements lunchmenu.DocumentFetcher at compile time.
var _ lunchmenu.DocumentFetcher = (*Loader)(nil)

// DefaultMaxBytes is the largest file the Loader reads.
const DefaultMaxBytes = 8 << 20

// Loader implements lunchmenu.DocumentFetcher for local files, so saved
// menu pages and PDFs go through the same extraction as fetched ones.
// Paths may be plain or file:// URLs.
type Loader struct {
	MaxBytes int64
}

// NewLoader creates a Loader with the default size limit.
func NewLoader() *Loader {
	return &Loader{MaxBytes: DefaultMaxBytes}
}

// Fetch reads the file at path and detects its kind. HTML that is not
// valid UTF-8 is transcoded using the charset declared in the markup.
func (l *Loader) Fetch(ctx context.Context, path string) (*lunchmenu.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := filePath(path)
	f, err := os.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, lunchmenu.Errorf(lunchmenu.ENOTFOUND, "file %q not found", name)
		}
		return nil, lunchmenu.Errorf(lunchmenu.EFETCH, "open %s: %v", name, err)
	}
	defer f.Close()

	body, err := io.ReadAll(io.LimitReader(f, l.MaxBytes+1))
	if err != nil {
		return nil, lunchmenu.Errorf(lunchmenu.EFETCH, "read %s: %v", name, err)
	}
	if int64(len(body)) > l.MaxBytes {
		return nil, lunchmenu.Errorf(lunchmenu.ETOOLARGE, "file exceeds %d bytes", l.MaxBytes)
	}

	doc := &lunchmenu.Document{
		URL:  name,
		Kind: lunchmenu.DetectKind(name, "", body),
		Body: body,
	}
	if doc.Kind == lunchmenu.KindHTML && !utf8.Valid(body) {
		r, err := charset.NewReader(bytes.NewReader(body), "text/html")
		if err != nil {
			return nil, lunchmenu.Errorf(lunchmenu.EINVALID, "decode %s: %v", name, err)
		}
		if doc.Body, err = io.ReadAll(r); err != nil {
			return nil, lunchmenu.Errorf(lunchmenu.EINVALID, "decode %s: %v", name, err)
		}
	}
	if doc.Kind == lunchmenu.KindHTML {
		doc.ContentType = "text/html; charset=utf-8"
	}
	return doc, nil
}

// Close is a no-op.
func (l *Loader) Close() error {
	return nil
}

func filePath(path string) string {
	if strings.HasPrefix(path, "file://") {
		if u, err := url.Parse(path); err == nil {
			return filepath.FromSlash(u.Path)
		}
	}
	return path
}
