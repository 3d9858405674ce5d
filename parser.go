package lunchmenu

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// allergenCodes matches a parenthesized list of allergen indexes like "(1,3,7)".
var allergenCodes = regexp.MustCompile(`\(\s*\d+(?:\s*,\s*\d+)*\s*\)`)

// leadingDigit matches lines that open with a number, optionally parenthesized.
var leadingDigit = regexp.MustCompile(`^\(?\d`)

// nameDecoration is trimmed from both ends of a dish name.
const nameDecoration = " \t.,;:|/*•·-–—…"

// ellipsis is appended to truncated meal names.
const ellipsis = "…"

// StripAllergenCodes removes every parenthesized allergen list from line and
// trims the result.
func StripAllergenCodes(line string) string {
	return strings.TrimSpace(allergenCodes.ReplaceAllString(line, ""))
}

// Parser turns normalized menu lines into meals.
//
// A Parser is immutable once built and is safe for concurrent use; all
// per-document state lives inside a single ParseLines call.
type Parser struct {
	rules        Rules
	weekdays     map[string]Weekday
	dayNames     []string
	phrases      map[string]struct{}
	substrings   []string
	patterns     []*regexp.Regexp
	placeholders []string
	price        *regexp.Regexp
}

// NewParser compiles rules into a Parser.
func NewParser(rules Rules) (*Parser, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	p := &Parser{
		rules:    rules,
		weekdays: make(map[string]Weekday, len(rules.Weekdays)),
		phrases:  make(map[string]struct{}, len(rules.NoisePhrases)),
	}

	for _, d := range rules.Weekdays {
		key := dayKey(d)
		if key == "" {
			continue
		}
		if _, ok := p.weekdays[key]; !ok {
			p.dayNames = append(p.dayNames, key)
		}
		p.weekdays[key] = canonicalDays[key]
	}
	for _, s := range rules.NoisePhrases {
		p.phrases[fold(s)] = struct{}{}
	}
	for _, s := range rules.NoiseSubstrings {
		if s = fold(s); s != "" {
			p.substrings = append(p.substrings, s)
		}
	}
	for _, s := range rules.Placeholders {
		if s = fold(s); s != "" {
			p.placeholders = append(p.placeholders, s)
		}
	}
	for _, expr := range rules.NoisePatterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, Errorf(EINVALID, "rules: invalid noise pattern %q: %v", expr, err)
		}
		p.patterns = append(p.patterns, re)
	}

	currencies := make([]string, 0, len(rules.Currencies))
	for _, c := range rules.Currencies {
		currencies = append(currencies, regexp.QuoteMeta(fold(c)))
	}
	cur := strings.Join(currencies, "|")

	// Group 1 is the amount. The amount must not continue a longer number and
	// is followed by "Kč", ",-" or ",- Kč".
	expr := `(?i)(?:^|\D)(\d{1,4})(?:[.,]\d{1,2})?\s*(?:[.,][-–]\s*(?:` + cur + `)?|(?:` + cur + `))`
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, Errorf(EINVALID, "rules: invalid currency markers: %v", err)
	}
	p.price = re

	return p, nil
}

// Rules returns the rules the parser was built from.
func (p *Parser) Rules() Rules {
	return p.rules
}

// IsNoise reports whether line is boilerplate that never names a dish:
// empty lines, bare section headings, opening hours, contacts, legal notices
// and similar.
func (p *Parser) IsNoise(line string) bool {
	t := fold(line)
	if t == "" {
		return true
	}
	if _, ok := p.phrases[strings.TrimSpace(strings.TrimSuffix(t, ":"))]; ok {
		return true
	}
	for _, s := range p.substrings {
		if strings.Contains(t, s) {
			return true
		}
	}
	for _, re := range p.patterns {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

// DayOf returns the weekday when line consists of nothing but a weekday name.
// Case and diacritics are ignored, so "PONDELI" and "pondělí" both mean Monday.
func (p *Parser) DayOf(line string) (Weekday, bool) {
	d, ok := p.weekdays[dayKey(strings.TrimSuffix(fold(line), ":"))]
	return d, ok
}

// IsDayLine reports whether line is a day marker.
func (p *Parser) IsDayLine(line string) bool {
	_, ok := p.DayOf(line)
	return ok
}

// ExtractPrice returns the first price found in line.
func (p *Parser) ExtractPrice(line string) (int, bool) {
	m := p.price.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// StripPrice removes the first price and everything after it.
func (p *Parser) StripPrice(line string) string {
	loc := p.price.FindStringSubmatchIndex(line)
	if loc == nil {
		return strings.TrimSpace(line)
	}
	return strings.TrimSpace(line[:loc[2]])
}

// removePrices deletes every price from line, keeping the characters that
// separate them.
func (p *Parser) removePrices(line string) string {
	var sb strings.Builder
	last := 0
	for _, loc := range p.price.FindAllStringSubmatchIndex(line, -1) {
		sb.WriteString(line[last:loc[2]])
		sb.WriteByte(' ')
		last = loc[1]
	}
	sb.WriteString(line[last:])
	return sb.String()
}

// isPriceOnly reports whether line holds a price and, apart from allergen
// codes and punctuation, nothing else.
func (p *Parser) isPriceOnly(line string) bool {
	rest := p.removePrices(StripAllergenCodes(line))
	for _, r := range rest {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ParseLines runs the meal state machine over lines in order.
//
// Per line, after normalization: noise is dropped; a day marker sets the
// current day and closes the open meal; a bare price line backfills the open
// meal's missing price; a line with a price and a name starts a priced meal;
// a long enough line without a leading number starts an unpriced meal;
// anything else is dropped. No line ever fails the parse.
func (p *Parser) ParseLines(lines []string) []*Meal {
	var (
		meals []*Meal
		day   Weekday
		open  *Meal
	)

	for _, raw := range lines {
		line := Normalize(raw)
		if p.IsNoise(line) {
			continue
		}

		if d, ok := p.DayOf(line); ok {
			day = d
			open = nil
			continue
		}

		price, hasPrice := p.ExtractPrice(line)

		if hasPrice && open != nil && !open.HasPrice() && p.isPriceOnly(line) {
			open.SetPrice(price)
			continue
		}

		if hasPrice {
			name := cleanName(StripAllergenCodes(p.StripPrice(line)))
			if utf8.RuneCountInString(name) >= p.rules.MinPricedNameLength {
				open = &Meal{Name: name, Day: day}
				open.SetPrice(price)
				meals = append(meals, open)
				continue
			}
		}

		if utf8.RuneCountInString(line) >= p.rules.MinNameLength && !leadingDigit.MatchString(line) {
			if name := cleanName(StripAllergenCodes(line)); name != "" {
				open = &Meal{Name: name, Day: day}
				meals = append(meals, open)
			}
			continue
		}
	}

	return meals
}

// Finalize filters raw parser output: it drops multi-day summary rows,
// placeholder phrases and empty names, truncates long names, removes
// case-insensitive duplicates of the truncated names keeping the first
// occurrence and caps the count.
func (p *Parser) Finalize(meals []*Meal) []*Meal {
	caser := cases.Fold()
	seen := make(map[string]struct{}, len(meals))
	out := make([]*Meal, 0, len(meals))

	for _, m := range meals {
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m.Name)
		if name == "" {
			continue
		}

		lower := strings.ToLower(name)
		if p.isSummaryRow(lower) || p.isPlaceholder(lower) {
			continue
		}

		name = truncate(name, p.rules.MaxNameLength)
		key := caser.String(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		if len(out) == p.rules.MaxMeals {
			break
		}

		if name != m.Name {
			cp := *m
			cp.Name = name
			m = &cp
		}
		out = append(out, m)
	}

	return out
}

// Extract parses lines and finalizes the result.
func (p *Parser) Extract(lines []string) []*Meal {
	return p.Finalize(p.ParseLines(lines))
}

// isSummaryRow reports whether a lower-cased name mentions enough distinct
// weekdays to be a "Pondělí Úterý Středa ..." row rather than a dish.
func (p *Parser) isSummaryRow(lower string) bool {
	plain := StripDiacritics(lower)
	days := make(map[Weekday]struct{}, len(Weekdays))
	for _, name := range p.dayNames {
		if strings.Contains(plain, name) {
			days[p.weekdays[name]] = struct{}{}
		}
	}
	return len(days) >= p.rules.SummaryDayCount
}

func (p *Parser) isPlaceholder(lower string) bool {
	for _, s := range p.placeholders {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// canonicalDays maps the diacritic-free spelling of each weekday to its
// canonical name.
var canonicalDays = func() map[string]Weekday {
	m := make(map[string]Weekday, len(Weekdays))
	for _, d := range Weekdays {
		m[dayKey(string(d))] = d
	}
	return m
}()

// dayKey is the lookup key of a weekday spelling.
func dayKey(s string) string {
	return strings.TrimSpace(StripDiacritics(fold(s)))
}

// fold lower-cases and normalizes s for table lookups.
func fold(s string) string {
	return strings.ToLower(Normalize(s))
}

// cleanName trims list bullets, separators and price leaders around a name.
func cleanName(s string) string {
	return strings.Trim(strings.TrimSpace(s), nameDecoration)
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max])) + ellipsis
}
