package goquery

import (
	"bytes"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lunchmenu"
)

// Ensure LinkFinder implements lunchmenu.LinkFinder.
var _ lunchmenu.LinkFinder = (*LinkFinder)(nil)

// DefaultMenuKeywords mark a link as leading to a menu when found in its
// text or URL. They are matched case-insensitively without diacritics.
var DefaultMenuKeywords = []string{
	"menu", "menicko", "poledni", "obed", "jidelni listek", "jidelni-listek",
	"denni nabidka", "denni-nabidka", "tydenni",
}

// linkPriority orders candidate links; higher is tried first.
type linkPriority int

const (
	priorityKeyword linkPriority = iota + 1
	priorityPDF
	priorityEmbedded
)

// LinkFinder finds links to menu documents on a restaurant page.
//
// Embedded documents (iframe, embed, object) come first, then linked PDFs
// and then same-site links whose text or URL mentions a menu keyword.
// Links to other hosts are kept only for embedded documents and PDFs.
type LinkFinder struct {
	Keywords []string
}

// NewLinkFinder creates a LinkFinder with the default keywords.
func NewLinkFinder() *LinkFinder {
	return &LinkFinder{Keywords: DefaultMenuKeywords}
}

type menuLink struct {
	url      string
	priority linkPriority
	order    int
}

// MenuLinks implements lunchmenu.LinkFinder.
func (f *LinkFinder) MenuLinks(doc *lunchmenu.Document) ([]string, error) {
	base, err := url.Parse(doc.URL)
	if err != nil {
		return nil, lunchmenu.Errorf(lunchmenu.EINVALID, "invalid base URL: %v", err)
	}

	d, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Body))
	if err != nil {
		return nil, lunchmenu.Errorf(lunchmenu.EINVALID, "failed to parse HTML: %v", err)
	}

	// Track seen URLs with their index for in-place priority upgrades
	seen := make(map[string]int)
	var links []menuLink

	add := func(href string, priority linkPriority) {
		if href == "" || isNonHTTPLink(href) {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" || lunchmenu.KindFromURL(resolved) == lunchmenu.KindImage {
			return
		}
		if priority == priorityKeyword && !isSameHost(base, resolved) {
			return
		}
		if idx, ok := seen[resolved]; ok {
			if priority > links[idx].priority {
				links[idx].priority = priority
			}
			return
		}
		seen[resolved] = len(links)
		links = append(links, menuLink{url: resolved, priority: priority, order: len(links)})
	}

	d.Find("iframe[src], embed[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		add(src, priorityEmbedded)
	})
	d.Find("object[data]").Each(func(_ int, sel *goquery.Selection) {
		data, _ := sel.Attr("data")
		add(data, priorityEmbedded)
	})
	d.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		switch {
		case lunchmenu.KindFromURL(href) == lunchmenu.KindPDF:
			add(href, priorityPDF)
		case f.mentionsMenu(sel.Text()) || f.mentionsMenu(href):
			add(href, priorityKeyword)
		}
	})

	sort.SliceStable(links, func(i, j int) bool {
		if links[i].priority != links[j].priority {
			return links[i].priority > links[j].priority
		}
		return links[i].order < links[j].order
	})

	urls := make([]string, len(links))
	for i, l := range links {
		urls[i] = l.url
	}
	return urls, nil
}

func (f *LinkFinder) mentionsMenu(s string) bool {
	s = strings.ToLower(lunchmenu.StripDiacritics(s))
	for _, kw := range f.Keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// resolveURL resolves href against base. It returns an empty string when
// href cannot be parsed or points back at the base page itself.
// Fragments are stripped.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost reports whether resolved has the same host as base.
// Subdomains are considered different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
