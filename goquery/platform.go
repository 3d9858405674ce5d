package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Platform is the website builder a restaurant page was made with.
type Platform string

// Recognized platforms.
const (
	PlatformUnknown     Platform = ""
	PlatformWordPress   Platform = "wordpress"
	PlatformWix         Platform = "wix"
	PlatformWebnode     Platform = "webnode"
	PlatformSquarespace Platform = "squarespace"
)

// DefaultPlatformRoots are content-root selectors for pages built with a
// known platform. They are tried before the generic roots.
var DefaultPlatformRoots = map[Platform]string{
	PlatformWordPress:   ".entry-content, .wp-block-post-content, .elementor-location-single",
	PlatformWix:         "#PAGES_CONTAINER, #SITE_PAGES",
	PlatformWebnode:     "#contentSection, .wnd-page-content",
	PlatformSquarespace: ".sqs-layout, #page",
}

// Detector identifies website builders from HTML content.
// It checks the meta generator tag and then markup that is unique to each
// platform.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the platform the document was built with, or
// PlatformUnknown. It must run before scripts and styles are stripped.
func (d *Detector) Detect(doc *goquery.Document) Platform {
	if p := d.detectFromMetaGenerator(doc); p != PlatformUnknown {
		return p
	}

	// WordPress serves theme assets from wp-content and wp-includes
	if hasSelector(doc, "link[href*='/wp-content/'], script[src*='/wp-content/'], script[src*='/wp-includes/']") {
		return PlatformWordPress
	}

	if hasSelector(doc, "#SITE_CONTAINER, [data-mesh-id]") ||
		hasSelector(doc, "script[src*='static.parastorage.com']") {
		return PlatformWix
	}

	if hasSelector(doc, "link[href*='webnode'], script[src*='webnode']") ||
		hasSelector(doc, "[class*='wnd-']") {
		return PlatformWebnode
	}

	if hasSelector(doc, "script[src*='squarespace'], [data-squarespace-cacheversion]") {
		return PlatformSquarespace
	}

	return PlatformUnknown
}

func (d *Detector) detectFromMetaGenerator(doc *goquery.Document) Platform {
	generator := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(content)
		}
	})

	switch {
	case generator == "":
		return PlatformUnknown
	case strings.Contains(generator, "wordpress"), strings.Contains(generator, "elementor"):
		return PlatformWordPress
	case strings.Contains(generator, "wix"):
		return PlatformWix
	case strings.Contains(generator, "webnode"):
		return PlatformWebnode
	case strings.Contains(generator, "squarespace"):
		return PlatformSquarespace
	}
	return PlatformUnknown
}

func hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
