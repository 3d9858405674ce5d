package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lunchmenu/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, html string) *gq.Document {
	t.Helper()
	doc, err := gq.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want goquery.Platform
	}{
		{
			name: "WordPress from meta generator",
			html: `<html><head><meta name="generator" content="WordPress 6.6.2"></head><body></body></html>`,
			want: goquery.PlatformWordPress,
		},
		{
			name: "WordPress from theme assets",
			html: `<html><head><link rel="stylesheet" href="https://restaurace.cz/wp-content/themes/bistro/style.css"></head><body></body></html>`,
			want: goquery.PlatformWordPress,
		},
		{
			name: "Elementor generator counts as WordPress",
			html: `<html><head><meta name="generator" content="Elementor 3.24.0; features: e_font_icon_svg"></head></html>`,
			want: goquery.PlatformWordPress,
		},
		{
			name: "Wix from meta generator",
			html: `<html><head><meta name="generator" content="Wix.com Website Builder"></head></html>`,
			want: goquery.PlatformWix,
		},
		{
			name: "Wix from site container",
			html: `<html><body><div id="SITE_CONTAINER"><div data-mesh-id="comp-1inlineContent"></div></div></body></html>`,
			want: goquery.PlatformWix,
		},
		{
			name: "Webnode from markup classes",
			html: `<html><body><div class="wnd-page-content"><p>Menu</p></div></body></html>`,
			want: goquery.PlatformWebnode,
		},
		{
			name: "Squarespace from scripts",
			html: `<html><head><script src="https://static1.squarespace.com/static/vta/site.js"></script></head></html>`,
			want: goquery.PlatformSquarespace,
		},
		{
			name: "unknown for a hand-written page",
			html: `<html><head><title>U Zlatého tygra</title></head><body><p>Guláš 165 Kč</p></body></html>`,
			want: goquery.PlatformUnknown,
		},
		{
			name: "unknown generator is not guessed",
			html: `<html><head><meta name="generator" content="Hugo 0.128"></head></html>`,
			want: goquery.PlatformUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := goquery.NewDetector().Detect(parseHTML(t, tt.html))

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLineSource_PlatformRoots(t *testing.T) {
	t.Parallel()

	t.Run("uses the platform root before main", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta name="generator" content="WordPress 6.6"></head><body>
<main>
<div class="widget"><p>Novinky: grilovací večer 25. 10.</p></div>
<div class="entry-content"><p>Guláš 165 Kč</p></div>
</main>
</body></html>`

		lines, err := goquery.NewLineSource().Lines(htmlDoc(html))

		require.NoError(t, err)
		assert.Equal(t, []string{"Guláš 165 Kč"}, lines)
	})

	t.Run("falls back to generic roots when the platform root is missing", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta name="generator" content="WordPress 6.6"></head><body>
<div class="sidebar"><p>Akce</p></div>
<main><p>Řízek 179 Kč</p></main>
</body></html>`

		lines, err := goquery.NewLineSource().Lines(htmlDoc(html))

		require.NoError(t, err)
		assert.Equal(t, []string{"Řízek 179 Kč"}, lines)
	})

	t.Run("ignores platform roots without a detector", func(t *testing.T) {
		t.Parallel()

		src := goquery.NewLineSource()
		src.Detector = nil
		html := `<html><head><meta name="generator" content="WordPress 6.6"></head><body>
<main><p>Polévka 45 Kč</p><div class="entry-content"><p>Guláš 165 Kč</p></div></main>
</body></html>`

		lines, err := src.Lines(htmlDoc(html))

		require.NoError(t, err)
		assert.Equal(t, []string{"Polévka 45 Kč", "Guláš 165 Kč", "Guláš 165 Kč"}, lines)
	})
}
