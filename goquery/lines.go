package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lunchmenu"
	"golang.org/x/net/html"
)

// Ensure LineSource implements lunchmenu.LineSource.
var _ lunchmenu.LineSource = (*LineSource)(nil)

// DefaultRoots are content-root candidate groups tried in order. A later
// group is used only when no element matches an earlier one.
var DefaultRoots = []string{
	"main, [role=main]",
	"#content, .content, article, .entry-content",
	"body",
}

// DefaultStrip matches elements that never contain the menu.
const DefaultStrip = "script, style, noscript, template, nav, footer, header nav, iframe"

// DefaultElements are the elements whose text becomes menu lines.
const DefaultElements = "h1, h2, h3, h4, h5, h6, li, p, div, span, td"

// blockElements start a new line when rendered inside another element.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "div": true, "dl": true, "dt": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "header": true,
	"hr": true, "li": true, "main": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "td": true, "th": true,
	"tr": true, "ul": true,
}

// LineSource turns HTML menu pages into ordered text lines.
//
// When Detector recognizes the page's platform, its PlatformRoots selector
// is tried before Roots. Elements matching Elements are visited in document
// order inside the selected content root and each contributes its full
// text, so nested elements repeat their children's lines. Duplicates are
// absorbed by the parser's deduplication.
type LineSource struct {
	Detector      *Detector
	PlatformRoots map[Platform]string
	Roots         []string
	Strip         string
	Elements      string
}

// NewLineSource creates a LineSource with the default selectors.
func NewLineSource() *LineSource {
	return &LineSource{
		Detector:      NewDetector(),
		PlatformRoots: DefaultPlatformRoots,
		Roots:         DefaultRoots,
		Strip:         DefaultStrip,
		Elements:      DefaultElements,
	}
}

// Lines implements lunchmenu.LineSource.
func (s *LineSource) Lines(doc *lunchmenu.Document) ([]string, error) {
	d, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Body))
	if err != nil {
		return nil, lunchmenu.Errorf(lunchmenu.EINVALID, "failed to parse HTML: %v", err)
	}

	platform := PlatformUnknown
	if s.Detector != nil {
		platform = s.Detector.Detect(d)
	}

	if s.Strip != "" {
		d.Find(s.Strip).Remove()
	}

	root := s.contentRoot(d, platform)

	var lines []string
	root.Find(s.Elements).Each(func(_ int, sel *goquery.Selection) {
		lines = append(lines, lunchmenu.SplitLines(renderText(sel))...)
	})

	// A root with bare text and no matching elements still yields lines.
	if len(lines) == 0 {
		lines = lunchmenu.SplitLines(renderText(root))
	}

	return lines, nil
}

// contentRoot returns the first element of the first candidate group that
// matches anything, or the whole document.
func (s *LineSource) contentRoot(d *goquery.Document, platform Platform) *goquery.Selection {
	candidates := s.Roots
	if root, ok := s.PlatformRoots[platform]; ok {
		candidates = append([]string{root}, s.Roots...)
	}
	for _, candidate := range candidates {
		if sel := d.Find(candidate); sel.Length() > 0 {
			return sel.First()
		}
	}
	return d.Selection
}

// renderText returns the text of the selection with <br> and block
// boundaries rendered as line breaks.
func renderText(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, n := range sel.Nodes {
		writeText(&sb, n)
	}
	return sb.String()
}

func writeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		if n.Data == "br" {
			sb.WriteByte('\n')
			return
		}
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		sb.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(sb, c)
	}
	if block {
		sb.WriteByte('\n')
	}
}
