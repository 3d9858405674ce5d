// Package pdf extracts menu lines from PDF documents using
// github.com/ledongthuc/pdf.
package pdf

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/fwojciec/lunchmenu"
	"github.com/ledongthuc/pdf"
)

// Ensure types implement the domain interfaces.
var (
	_ lunchmenu.TextExtractor = (*TextExtractor)(nil)
	_ lunchmenu.LineSource    = (*LineSource)(nil)
)

// DefaultMinTextLength is the number of non-space characters below which a
// PDF is considered a scan without a text layer.
const DefaultMinTextLength = 30

// wordGap is the horizontal gap, relative to font size, that separates words
// placed as individual glyph runs.
const wordGap = 0.2

// TextExtractor reads the text layer of a PDF row by row, top to bottom, so
// that menu lines stay intact.
type TextExtractor struct{}

// NewTextExtractor creates a TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// ExtractText implements lunchmenu.TextExtractor.
func (e *TextExtractor) ExtractText(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", lunchmenu.Errorf(lunchmenu.EINVALID, "empty PDF content")
	}

	// The reader panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", lunchmenu.Errorf(lunchmenu.EINVALID, "malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", lunchmenu.Errorf(lunchmenu.EINVALID, "failed to open PDF: %v", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pt, err := pageText(page)
		if err != nil || pt == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(pt)
	}

	return sb.String(), nil
}

// pageText renders a page one text row per line. It falls back to the plain
// text stream when rows cannot be built.
func pageText(page pdf.Page) (string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		plain, perr := page.GetPlainText(nil)
		if perr != nil {
			return "", fmt.Errorf("read page text: %w", err)
		}
		return strings.TrimSpace(plain), nil
	}

	// Higher Y is closer to the top of the page.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Position > rows[j].Position
	})

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if line := rowText(row.Content); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// rowText joins the glyph runs of a row left to right, inserting a space
// where runs are visibly apart.
func rowText(texts pdf.TextHorizontal) string {
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var sb strings.Builder
	end := 0.0
	for i, t := range sorted {
		if i > 0 && t.X-end > t.FontSize*wordGap && !endsWithSpace(sb.String()) && !strings.HasPrefix(t.S, " ") {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.S)
		end = t.X + t.W
	}
	return strings.TrimSpace(sb.String())
}

func endsWithSpace(s string) bool {
	if s == "" {
		return true
	}
	return unicode.IsSpace(rune(s[len(s)-1]))
}

// LineSource implements lunchmenu.LineSource for PDF documents.
type LineSource struct {
	Extractor lunchmenu.TextExtractor

	// MinTextLength is the minimum number of non-space characters a text
	// layer must have to be parsed.
	MinTextLength int
}

// NewLineSource creates a LineSource backed by a TextExtractor.
func NewLineSource() *LineSource {
	return &LineSource{
		Extractor:     NewTextExtractor(),
		MinTextLength: DefaultMinTextLength,
	}
}

// Lines implements lunchmenu.LineSource. It returns ENOTEXT when the PDF
// carries too little text, which usually means a scanned image.
func (s *LineSource) Lines(doc *lunchmenu.Document) ([]string, error) {
	text, err := s.Extractor.ExtractText(doc.Body)
	if err != nil {
		return nil, err
	}

	if countVisible(text) < s.MinTextLength {
		return nil, lunchmenu.Errorf(lunchmenu.ENOTEXT, "PDF has no text layer (likely scanned, needs OCR)")
	}

	return lunchmenu.SplitLines(text), nil
}

func countVisible(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
