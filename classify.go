package lunchmenu

import (
	"strings"
	"unicode"
)

// DishTag is a coarse dish category guessed from its name.
type DishTag string

const (
	TagChicken DishTag = "chicken"
	TagPork    DishTag = "pork"
	TagBeef    DishTag = "beef"
	TagFish    DishTag = "fish"
	TagVeg     DishTag = "veg"
	TagOther   DishTag = "other"
)

// DishTags lists every tag in presentation order.
var DishTags = []DishTag{TagChicken, TagPork, TagBeef, TagFish, TagVeg, TagOther}

// Label returns the Czech label for the tag.
func (t DishTag) Label() string {
	switch t {
	case TagChicken:
		return "Kuřecí"
	case TagPork:
		return "Vepřové"
	case TagBeef:
		return "Hovězí"
	case TagFish:
		return "Ryby/mořské plody"
	case TagVeg:
		return "Vegetariánské (odhad)"
	}
	return "Ostatní"
}

// Word stems matched against the start of each word of a dish name.
var (
	chickenStems = []string{"kuř", "kure", "kurec", "chicken"}
	porkStems    = []string{"vepř", "vepr", "krkov", "bůček", "slanin", "pork"}
	beefStems    = []string{"hověz", "hovez", "beef", "steak"}
	fishStems    = []string{"ryb", "losos", "tresk", "tuňák", "tunak", "fish"}

	meatStems = []string{
		"kuř", "vepř", "hověz", "krůt", "kachn", "kachen", "jehně", "jehne",
		"telec", "zvěř", "slanin", "šunk", "uzen", "salám", "salam", "klobás",
		"klobas", "tatarák", "párek", "parek", "špek",
	}
	seafoodStems = []string{"ryb", "losos", "tresk", "tuňá", "sardink", "krevet", "chobotnic", "mušl", "calamari", "ančovi"}
	vegStems     = []string{
		"vegetarián", "vegan", "tofu", "tempeh", "falafel", "sýr", "eidam",
		"hermelín", "mozzarell", "ricott", "gorgonzol", "gnocchi", "tvaroh",
		"houb", "žampion", "špenát", "cuket", "lilek", "brokolic", "květák",
		"cizrn", "čočk", "fazol", "hrách", "seitan",
	}
)

// ClassifyDish guesses a dish category from its name alone. The first
// matching meat category wins; a dish is vegetarian only when it names a
// vegetarian ingredient and no meat or seafood.
func ClassifyDish(name string) DishTag {
	words := strings.FieldsFunc(strings.ToLower(Normalize(name)), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	switch {
	case hasStem(words, chickenStems):
		return TagChicken
	case hasStem(words, porkStems):
		return TagPork
	case hasStem(words, beefStems):
		return TagBeef
	case hasStem(words, fishStems):
		return TagFish
	case hasStem(words, vegStems) && !hasStem(words, meatStems) && !hasStem(words, seafoodStems):
		return TagVeg
	}
	return TagOther
}

func hasStem(words, stems []string) bool {
	for _, w := range words {
		for _, s := range stems {
			if strings.HasPrefix(w, s) {
				return true
			}
		}
	}
	return false
}

// Recommendation groups dishes by tag with a readable summary.
type Recommendation struct {
	Summary string               `json:"summary"`
	Groups  map[DishTag][]string `json:"groups"`
}

// Recommend classifies dishes and summarizes the first few of each group.
func Recommend(dishes []string) *Recommendation {
	rec := &Recommendation{Groups: make(map[DishTag][]string, len(DishTags))}
	for _, t := range DishTags {
		rec.Groups[t] = []string{}
	}
	for _, d := range dishes {
		t := ClassifyDish(d)
		rec.Groups[t] = append(rec.Groups[t], d)
	}
	if len(dishes) == 0 {
		return rec
	}

	g := rec.Groups
	var lines []string
	add := func(prefix string, items []string, n int) {
		if len(items) > n {
			items = items[:n]
		}
		lines = append(lines, prefix+strings.Join(items, " • "))
	}

	if len(g[TagChicken]) > 0 {
		add("Pokud máš rád kuřecí: ", g[TagChicken], 3)
	}
	if len(g[TagPork]) > 0 {
		add("Pokud chceš vepřové: ", g[TagPork], 3)
	}
	if len(g[TagBeef]) > 0 {
		add("Pokud chceš hovězí: ", g[TagBeef], 3)
	}
	if len(g[TagFish]) > 0 {
		add("Pokud chceš rybu/mořské plody: ", g[TagFish], 3)
	}
	if len(g[TagVeg]) > 0 {
		add("Pokud hledáš vegetariánskou stravu (odhad podle názvu): ", g[TagVeg], 3)
	} else {
		lines = append(lines, "Vegetariánské jídlo jsem podle názvů nenašel (může to být jen tím, jak je menu napsané).")
	}

	meaty := len(g[TagChicken]) + len(g[TagPork]) + len(g[TagBeef]) + len(g[TagFish])
	if meaty == 0 && len(g[TagOther]) > 0 {
		add("Další položky: ", g[TagOther], 5)
	}

	rec.Summary = strings.Join(lines, "\n\n")
	return rec
}
