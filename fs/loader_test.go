package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/lunchmenu"
	"github.com/fwojciec/lunchmenu/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoader_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("reads an HTML file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "menu.html", []byte("<p>Guláš 165 Kč</p>"))

		doc, err := fs.NewLoader().Fetch(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, lunchmenu.KindHTML, doc.Kind)
		assert.Equal(t, "<p>Guláš 165 Kč</p>", string(doc.Body))
		assert.Equal(t, path, doc.URL)
	})

	t.Run("transcodes a windows-1250 page", func(t *testing.T) {
		t.Parallel()

		html := []byte(`<html><head><meta charset="windows-1250"></head><body><p>Gul`)
		html = append(html, 0xE1, 0x9A)
		html = append(html, []byte(` 165 K`)...)
		html = append(html, 0xE8)
		html = append(html, []byte(`</p></body></html>`)...)
		path := writeFile(t, "menu.htm", html)

		doc, err := fs.NewLoader().Fetch(context.Background(), path)

		require.NoError(t, err)
		assert.Contains(t, string(doc.Body), "Guláš 165 Kč")
	})

	t.Run("detects PDFs by content", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "download", []byte("%PDF-1.4\n%âãÏÓ"))

		doc, err := fs.NewLoader().Fetch(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, lunchmenu.KindPDF, doc.Kind)
	})

	t.Run("accepts file URLs", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "menu.html", []byte("<p>Řízek</p>"))

		doc, err := fs.NewLoader().Fetch(context.Background(), "file://"+filepath.ToSlash(path))

		require.NoError(t, err)
		assert.Equal(t, "<p>Řízek</p>", string(doc.Body))
	})

	t.Run("returns not found for a missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewLoader().Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.html"))

		assert.Equal(t, lunchmenu.ENOTFOUND, lunchmenu.ErrorCode(err))
	})

	t.Run("rejects files over the limit", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "menu.html", make([]byte, 64))
		l := &fs.Loader{MaxBytes: 32}

		_, err := l.Fetch(context.Background(), path)

		assert.Equal(t, lunchmenu.ETOOLARGE, lunchmenu.ErrorCode(err))
	})
}
