package mock

import "github.com/fwojciec/lunchmenu"

var (
	_ lunchmenu.MenuExtractor = (*MenuExtractor)(nil)
	_ lunchmenu.LineSource    = (*LineSource)(nil)
	_ lunchmenu.TextExtractor = (*TextExtractor)(nil)
	_ lunchmenu.LinkFinder    = (*LinkFinder)(nil)
)

// MenuExtractor is a mock implementation of lunchmenu.MenuExtractor.
type MenuExtractor struct {
	ExtractMenuFn func(doc *lunchmenu.Document) ([]*lunchmenu.Meal, error)
}

func (e *MenuExtractor) ExtractMenu(doc *lunchmenu.Document) ([]*lunchmenu.Meal, error) {
	return e.ExtractMenuFn(doc)
}

// LineSource is a mock implementation of lunchmenu.LineSource.
type LineSource struct {
	LinesFn func(doc *lunchmenu.Document) ([]string, error)
}

func (s *LineSource) Lines(doc *lunchmenu.Document) ([]string, error) {
	return s.LinesFn(doc)
}

// TextExtractor is a mock implementation of lunchmenu.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(data []byte) (string, error)
}

func (e *TextExtractor) ExtractText(data []byte) (string, error) {
	return e.ExtractTextFn(data)
}

// LinkFinder is a mock implementation of lunchmenu.LinkFinder.
type LinkFinder struct {
	MenuLinksFn func(doc *lunchmenu.Document) ([]string, error)
}

func (f *LinkFinder) MenuLinks(doc *lunchmenu.Document) ([]string, error) {
	return f.MenuLinksFn(doc)
}
