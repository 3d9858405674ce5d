package collect

import (
	"github.com/fwojciec/lunchmenu"
)

var _ lunchmenu.MenuExtractor = (*Extractor)(nil)

// DefaultMaxPDFBytes is the largest PDF handed to the PDF line source.
const DefaultMaxPDFBytes = 8 << 20

// Extractor implements lunchmenu.MenuExtractor by dispatching a document to
// the line source for its kind and parsing the resulting lines.
type Extractor struct {
	HTML        lunchmenu.LineSource
	PDF         lunchmenu.LineSource
	Parser      *lunchmenu.Parser
	MaxPDFBytes int
}

// NewExtractor creates an Extractor with the default PDF size ceiling.
func NewExtractor(parser *lunchmenu.Parser, html, pdf lunchmenu.LineSource) *Extractor {
	return &Extractor{
		HTML:        html,
		PDF:         pdf,
		Parser:      parser,
		MaxPDFBytes: DefaultMaxPDFBytes,
	}
}

// ExtractMenu implements lunchmenu.MenuExtractor.
func (e *Extractor) ExtractMenu(doc *lunchmenu.Document) ([]*lunchmenu.Meal, error) {
	var src lunchmenu.LineSource
	switch doc.Kind {
	case lunchmenu.KindImage:
		return nil, lunchmenu.Errorf(lunchmenu.EUNSUPPORTED, "image menus are not supported")
	case lunchmenu.KindPDF:
		if e.MaxPDFBytes > 0 && len(doc.Body) > e.MaxPDFBytes {
			return nil, lunchmenu.Errorf(lunchmenu.ETOOLARGE, "PDF is %d bytes, limit is %d", len(doc.Body), e.MaxPDFBytes)
		}
		src = e.PDF
	default:
		src = e.HTML
	}

	lines, err := src.Lines(doc)
	if err != nil {
		return nil, err
	}

	meals := e.Parser.Extract(lines)
	if len(meals) == 0 {
		return nil, lunchmenu.Errorf(lunchmenu.EEMPTY, "no meals found")
	}
	return meals, nil
}
