package collect_test

import (
	"bytes"
	"testing"

	"github.com/fwojciec/lunchmenu"
	"github.com/fwojciec/lunchmenu/collect"
	"github.com/fwojciec/lunchmenu/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T) *lunchmenu.Parser {
	t.Helper()
	p, err := lunchmenu.NewParser(lunchmenu.DefaultRules())
	require.NoError(t, err)
	return p
}

func staticLines(lines ...string) *mock.LineSource {
	return &mock.LineSource{
		LinesFn: func(_ *lunchmenu.Document) ([]string, error) {
			return lines, nil
		},
	}
}

func unusedLines(t *testing.T) *mock.LineSource {
	return &mock.LineSource{
		LinesFn: func(_ *lunchmenu.Document) ([]string, error) {
			t.Fatal("line source should not be called")
			return nil, nil
		},
	}
}

func TestExtractor_ExtractMenu(t *testing.T) {
	t.Parallel()

	t.Run("parses HTML lines into meals", func(t *testing.T) {
		t.Parallel()

		e := collect.NewExtractor(newParser(t),
			staticLines("Pondělí", "Guláš s knedlíkem 165 Kč", "Smažený sýr, hranolky 179 Kč"),
			unusedLines(t),
		)

		meals, err := e.ExtractMenu(&lunchmenu.Document{Kind: lunchmenu.KindHTML})

		require.NoError(t, err)
		require.Len(t, meals, 2)
		assert.Equal(t, "Guláš s knedlíkem", meals[0].Name)
		assert.Equal(t, lunchmenu.Monday, meals[0].Day)
	})

	t.Run("treats unknown kinds as HTML", func(t *testing.T) {
		t.Parallel()

		e := collect.NewExtractor(newParser(t), staticLines("Guláš s knedlíkem 165 Kč"), unusedLines(t))

		meals, err := e.ExtractMenu(&lunchmenu.Document{})

		require.NoError(t, err)
		assert.Len(t, meals, 1)
	})

	t.Run("dispatches PDFs to the PDF line source", func(t *testing.T) {
		t.Parallel()

		e := collect.NewExtractor(newParser(t), unusedLines(t), staticLines("Svíčková na smetaně 189 Kč"))

		meals, err := e.ExtractMenu(&lunchmenu.Document{Kind: lunchmenu.KindPDF, Body: []byte("%PDF-1.4")})

		require.NoError(t, err)
		require.Len(t, meals, 1)
		assert.Equal(t, "Svíčková na smetaně", meals[0].Name)
	})

	t.Run("rejects images", func(t *testing.T) {
		t.Parallel()

		e := collect.NewExtractor(newParser(t), unusedLines(t), unusedLines(t))

		_, err := e.ExtractMenu(&lunchmenu.Document{Kind: lunchmenu.KindImage})

		assert.Equal(t, lunchmenu.EUNSUPPORTED, lunchmenu.ErrorCode(err))
	})

	t.Run("rejects oversized PDFs before reading them", func(t *testing.T) {
		t.Parallel()

		e := collect.NewExtractor(newParser(t), unusedLines(t), unusedLines(t))
		e.MaxPDFBytes = 16

		_, err := e.ExtractMenu(&lunchmenu.Document{Kind: lunchmenu.KindPDF, Body: bytes.Repeat([]byte("x"), 17)})

		assert.Equal(t, lunchmenu.ETOOLARGE, lunchmenu.ErrorCode(err))
	})

	t.Run("passes line source errors through", func(t *testing.T) {
		t.Parallel()

		pdf := &mock.LineSource{
			LinesFn: func(_ *lunchmenu.Document) ([]string, error) {
				return nil, lunchmenu.Errorf(lunchmenu.ENOTEXT, "scanned")
			},
		}
		e := collect.NewExtractor(newParser(t), unusedLines(t), pdf)

		_, err := e.ExtractMenu(&lunchmenu.Document{Kind: lunchmenu.KindPDF})

		assert.Equal(t, lunchmenu.ENOTEXT, lunchmenu.ErrorCode(err))
	})

	t.Run("reports an empty result", func(t *testing.T) {
		t.Parallel()

		e := collect.NewExtractor(newParser(t), staticLines("Otevírací doba", "Kontakt"), unusedLines(t))

		_, err := e.ExtractMenu(&lunchmenu.Document{Kind: lunchmenu.KindHTML})

		assert.Equal(t, lunchmenu.EEMPTY, lunchmenu.ErrorCode(err))
	})
}
