package lunchmenu_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/lunchmenu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T) *lunchmenu.Parser {
	t.Helper()
	p, err := lunchmenu.NewParser(lunchmenu.DefaultRules())
	require.NoError(t, err)
	return p
}

func intPtr(n int) *int {
	return &n
}

func TestParser_ParseLines(t *testing.T) {
	t.Parallel()

	t.Run("attaches price from continuation line under a day", func(t *testing.T) {
		t.Parallel()

		p := newParser(t)

		meals := p.Extract([]string{"Pondělí", "Guláš", "(1,3,7) 165 Kč"})

		require.Len(t, meals, 1)
		assert.Equal(t, "Guláš", meals[0].Name)
		assert.Equal(t, intPtr(165), meals[0].Price)
		assert.Equal(t, lunchmenu.Monday, meals[0].Day)
	})

	t.Run("parses name and price from a combined line", func(t *testing.T) {
		t.Parallel()

		p := newParser(t)

		meals := p.Extract([]string{"Guláš 165 Kč"})

		require.Len(t, meals, 1)
		assert.Equal(t, "Guláš", meals[0].Name)
		assert.Equal(t, intPtr(165), meals[0].Price)
		assert.Equal(t, lunchmenu.Weekday(""), meals[0].Day)
	})

	t.Run("day marker closes price backfill", func(t *testing.T) {
		t.Parallel()

		p := newParser(t)

		meals := p.Extract([]string{"Guláš", "Úterý", "165 Kč"})

		require.Len(t, meals, 1)
		assert.Equal(t, "Guláš", meals[0].Name)
		assert.Nil(t, meals[0].Price)
		assert.Equal(t, lunchmenu.Weekday(""), meals[0].Day)
	})

	t.Run("never overwrites an existing price", func(t *testing.T) {
		t.Parallel()

		p := newParser(t)

		meals := p.ParseLines([]string{"Svíčková na smetaně 189 Kč", "(1,3,7) 200 Kč"})

		require.Len(t, meals, 1)
		assert.Equal(t, intPtr(189), meals[0].Price)
	})

	t.Run("tracks the current day across lines", func(t *testing.T) {
		t.Parallel()

		p := newParser(t)

		meals := p.Extract([]string{
			"Pondělí",
			"Gulášová polévka 45 Kč",
			"Smažený sýr, hranolky 179,-",
			"Úterý",
			"Kuřecí řízek, bramborový salát",
			"179,- Kč",
		})

		require.Len(t, meals, 3)
		assert.Equal(t, lunchmenu.Monday, meals[0].Day)
		assert.Equal(t, "Gulášová polévka", meals[0].Name)
		assert.Equal(t, intPtr(45), meals[0].Price)
		assert.Equal(t, "Smažený sýr, hranolky", meals[1].Name)
		assert.Equal(t, intPtr(179), meals[1].Price)
		assert.Equal(t, lunchmenu.Tuesday, meals[2].Day)
		assert.Equal(t, intPtr(179), meals[2].Price)
	})

	t.Run("accepts day markers with a trailing colon and any case", func(t *testing.T) {
		t.Parallel()

		p := newParser(t)

		meals := p.Extract([]string{"ČTVRTEK:", "Vepřo knedlo zelo 155 Kč"})

		require.Len(t, meals, 1)
		assert.Equal(t, lunchmenu.Thursday, meals[0].Day)
	})

	t.Run("does not treat a sentence mentioning a day as a marker", func(t *testing.T) {
		t.Parallel()

		p := newParser(t)

		meals := p.Extract([]string{"V pondělí zavřeno z technických důvodů", "Guláš 150 Kč"})

		require.Len(t, meals, 2)
		assert.Equal(t, lunchmenu.Weekday(""), meals[1].Day)
	})

	t.Run("strips allergen codes from names", func(t *testing.T) {
		t.Parallel()

		p := newParser(t)

		meals := p.Extract([]string{"Hovězí vývar s nudlemi (1,3,9) 45 Kč"})

		require.Len(t, meals, 1)
		assert.Equal(t, "Hovězí vývar s nudlemi", meals[0].Name)
	})

	t.Run("drops noise lines", func(t *testing.T) {
		t.Parallel()

		p := newParser(t)

		meals := p.Extract([]string{
			"Otevírací doba: 11–14",
			"Polední menu",
			"Rezervace na tel. 777 123 456",
			"Informační povinnost GDPR",
		})

		assert.Empty(t, meals)
	})

	t.Run("drops short and number-led lines", func(t *testing.T) {
		t.Parallel()

		p := newParser(t)

		meals := p.Extract([]string{"Pivo", "0,5 l", "(1,3)", "150 g"})

		assert.Empty(t, meals)
	})

	t.Run("never fails on arbitrary input", func(t *testing.T) {
		t.Parallel()

		p := newParser(t)

		assert.NotPanics(t, func() {
			p.Extract([]string{"", "   ", "\u00a0", "((((", "Kč", ",-", "9999999 Kč", strings.Repeat("x", 10000)})
		})
	})
}

func TestParser_Finalize(t *testing.T) {
	t.Parallel()

	t.Run("deduplicates names case-insensitively keeping the first", func(t *testing.T) {
		t.Parallel()

		p := newParser(t)

		meals := p.Finalize([]*lunchmenu.Meal{
			{Name: "Svíčková", Price: intPtr(189)},
			{Name: "Guláš"},
			{Name: "svíčková", Price: intPtr(150)},
		})

		require.Len(t, meals, 2)
		assert.Equal(t, "Svíčková", meals[0].Name)
		assert.Equal(t, intPtr(189), meals[0].Price)
		assert.Equal(t, "Guláš", meals[1].Name)
	})

	t.Run("rejects multi-day summary rows", func(t *testing.T) {
		t.Parallel()

		p := newParser(t)

		meals := p.Extract([]string{"Pondělí úterý středa čtvrtek pátek", "Menu na týden: pondělí úterý středa"})

		assert.Empty(t, meals)
	})

	t.Run("keeps names mentioning two days", func(t *testing.T) {
		t.Parallel()

		p := newParser(t)

		meals := p.Finalize([]*lunchmenu.Meal{{Name: "Pondělní a úterní speciál"}, {Name: "Jen pondělí a pátek 120 Kč"}})

		assert.Len(t, meals, 2)
	})

	t.Run("rejects placeholder phrases", func(t *testing.T) {
		t.Parallel()

		p := newParser(t)

		meals := p.Finalize([]*lunchmenu.Meal{{Name: "Nabídku pro Vás připravujeme"}})

		assert.Empty(t, meals)
	})

	t.Run("caps the number of meals", func(t *testing.T) {
		t.Parallel()

		rules := lunchmenu.DefaultRules()
		rules.MaxMeals = 2
		p, err := lunchmenu.NewParser(rules)
		require.NoError(t, err)

		meals := p.Finalize([]*lunchmenu.Meal{{Name: "Guláš"}, {Name: "Řízek"}, {Name: "Svíčková"}})

		require.Len(t, meals, 2)
		assert.Equal(t, "Řízek", meals[1].Name)
	})

	t.Run("truncates long names with an ellipsis", func(t *testing.T) {
		t.Parallel()

		rules := lunchmenu.DefaultRules()
		rules.MaxNameLength = 10
		p, err := lunchmenu.NewParser(rules)
		require.NoError(t, err)

		meals := p.Finalize([]*lunchmenu.Meal{{Name: "Kuřecí steak s grilovanou zeleninou"}})

		require.Len(t, meals, 1)
		assert.Equal(t, "Kuřecí ste…", meals[0].Name)
	})

	t.Run("keeps names unique after truncation", func(t *testing.T) {
		t.Parallel()

		p := newParser(t)
		base := strings.Repeat("Hovězí guláš s knedlíkem ", 7)

		meals := p.Extract([]string{base + "varianta A", base + "varianta B"})

		require.Len(t, meals, 1)
		assert.True(t, strings.HasSuffix(meals[0].Name, "…"))
		assert.True(t, strings.HasPrefix(meals[0].Name, "Hovězí guláš"))
	})

	t.Run("treats case variants of a truncated name as duplicates", func(t *testing.T) {
		t.Parallel()

		rules := lunchmenu.DefaultRules()
		rules.MaxNameLength = 12
		p, err := lunchmenu.NewParser(rules)
		require.NoError(t, err)

		meals := p.Finalize([]*lunchmenu.Meal{
			{Name: "Svíčková na smetaně", Price: intPtr(189)},
			{Name: "SVÍČKOVÁ NA SMETANĚ S BRUSINKAMI", Price: intPtr(199)},
		})

		require.Len(t, meals, 1)
		assert.Equal(t, intPtr(189), meals[0].Price)
	})

	t.Run("drops empty names", func(t *testing.T) {
		t.Parallel()

		p := newParser(t)

		meals := p.Finalize([]*lunchmenu.Meal{{Name: "  "}, nil})

		assert.Empty(t, meals)
	})
}

func TestParser_ExtractPrice(t *testing.T) {
	t.Parallel()

	p := newParser(t)

	for _, tc := range []struct {
		line  string
		price int
		ok    bool
	}{
		{"Guláš 165 Kč", 165, true},
		{"Guláš 165Kč", 165, true},
		{"Guláš 165,-", 165, true},
		{"Guláš 165,- Kč", 165, true},
		{"Guláš 165.-", 165, true},
		{"Guláš 165 CZK", 165, true},
		{"Guláš 165,50 Kč", 165, true},
		{"Polévka 35 Kč, menu 165 Kč", 35, true},
		{"Guláš 12345 Kč", 0, false},
		{"150 g Segedínský guláš", 0, false},
		{"Guláš", 0, false},
		{"Guláš Kč 165", 0, false},
	} {
		price, ok := p.ExtractPrice(tc.line)
		assert.Equal(t, tc.ok, ok, tc.line)
		assert.Equal(t, tc.price, price, tc.line)
	}
}

func TestParser_StripPrice(t *testing.T) {
	t.Parallel()

	p := newParser(t)

	assert.Equal(t, "Guláš", p.StripPrice("Guláš 165 Kč (1,3,7)"))
	assert.Equal(t, "Guláš", p.StripPrice("Guláš 165,- obsahuje lepek"))
	assert.Equal(t, "Guláš", p.StripPrice("Guláš"))
}

func TestStripAllergenCodes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Guláš", lunchmenu.StripAllergenCodes("Guláš (1, 3, 7)"))
	assert.Equal(t, "165 Kč", lunchmenu.StripAllergenCodes("(1,3,7,12) 165 Kč"))
	assert.Equal(t, "Guláš (hovězí)", lunchmenu.StripAllergenCodes("Guláš (hovězí)"))
}

func TestParser_IsDayLine(t *testing.T) {
	t.Parallel()

	p := newParser(t)

	assert.True(t, p.IsDayLine("Pondělí"))
	assert.True(t, p.IsDayLine("  pátek  "))
	assert.True(t, p.IsDayLine("STŘEDA"))
	assert.True(t, p.IsDayLine("Ctvrtek:"))
	assert.True(t, p.IsDayLine("PONDELI"))
	assert.False(t, p.IsDayLine("Pondělí 12. 10."))
	assert.False(t, p.IsDayLine("pondělí a úterý"))
}

func TestParser_IsNoise(t *testing.T) {
	t.Parallel()

	p := newParser(t)

	assert.True(t, p.IsNoise(""))
	assert.True(t, p.IsNoise("Polední menu"))
	assert.True(t, p.IsNoise("Polévka:"))
	assert.True(t, p.IsNoise("Otevírací doba: 11–14"))
	assert.True(t, p.IsNoise("Kontaktujte nás"))
	assert.True(t, p.IsNoise("info@restaurace.cz"))
	assert.True(t, p.IsNoise("https://restaurace.cz/menu"))
	assert.True(t, p.IsNoise("12.10.2026"))
	assert.False(t, p.IsNoise("Polévka dne 45 Kč"))
	assert.False(t, p.IsNoise("Guláš"))
}

func TestNewParser(t *testing.T) {
	t.Parallel()

	t.Run("rejects invalid noise patterns", func(t *testing.T) {
		t.Parallel()

		rules := lunchmenu.DefaultRules()
		rules.NoisePatterns = []string{"("}

		_, err := lunchmenu.NewParser(rules)

		require.Error(t, err)
		assert.Equal(t, lunchmenu.EINVALID, lunchmenu.ErrorCode(err))
	})

	t.Run("rejects rules without weekdays", func(t *testing.T) {
		t.Parallel()

		rules := lunchmenu.DefaultRules()
		rules.Weekdays = nil

		_, err := lunchmenu.NewParser(rules)

		require.Error(t, err)
		assert.Equal(t, lunchmenu.EINVALID, lunchmenu.ErrorCode(err))
	})

	t.Run("maps weekday spellings to canonical days", func(t *testing.T) {
		t.Parallel()

		rules := lunchmenu.DefaultRules()
		rules.Weekdays = []string{"pondeli", "Úterý"}
		p, err := lunchmenu.NewParser(rules)
		require.NoError(t, err)

		meals := p.ParseLines([]string{"Pondělí", "Guláš 165 Kč", "UTERY", "Řízek 179 Kč"})

		require.Len(t, meals, 2)
		assert.Equal(t, lunchmenu.Monday, meals[0].Day)
		assert.Equal(t, lunchmenu.Tuesday, meals[1].Day)
		assert.Len(t, lunchmenu.FilterMeals(meals, lunchmenu.Monday), 1)
	})

	t.Run("rejects unknown weekday names", func(t *testing.T) {
		t.Parallel()

		rules := lunchmenu.DefaultRules()
		rules.Weekdays = append(rules.Weekdays, "monday")

		_, err := lunchmenu.NewParser(rules)

		require.Error(t, err)
		assert.Equal(t, lunchmenu.EINVALID, lunchmenu.ErrorCode(err))
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		p := newParser(t)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				meals := p.Extract([]string{"Pondělí", "Guláš", "(1,3,7) 165 Kč"})
				assert.Len(t, meals, 1)
			}()
		}
		wg.Wait()
	})
}
