package lunchmenu

// Rules holds every table the extraction pipeline is tuned with.
// Rules are data: they can be loaded from a file and replaced without
// touching the parser. See DefaultRules for the built-in Czech tables.
type Rules struct {
	// Weekdays is the day-marker vocabulary. Every entry must spell one of
	// the canonical weekday names, ignoring case and diacritics.
	Weekdays []string `yaml:"weekdays" json:"weekdays"`

	// NoisePhrases are headings that are noise when they make up the whole line.
	NoisePhrases []string `yaml:"noisePhrases" json:"noisePhrases"`

	// NoiseSubstrings mark a line as noise wherever they occur.
	NoiseSubstrings []string `yaml:"noiseSubstrings" json:"noiseSubstrings"`

	// NoisePatterns are regular expressions matched against the lower-cased line.
	NoisePatterns []string `yaml:"noisePatterns" json:"noisePatterns"`

	// Placeholders are phrases sites print instead of a menu. Meals whose
	// name contains one are dropped.
	Placeholders []string `yaml:"placeholders" json:"placeholders"`

	// Currencies are written currency markers recognized after a price.
	Currencies []string `yaml:"currencies" json:"currencies"`

	// MinPricedNameLength is the shortest name accepted from a line that
	// also carries a price.
	MinPricedNameLength int `yaml:"minPricedNameLength" json:"minPricedNameLength"`

	// MinNameLength is the shortest line accepted as a dish without a price.
	MinNameLength int `yaml:"minNameLength" json:"minNameLength"`

	// SummaryDayCount is the number of distinct weekday names that marks a
	// line as a multi-day summary row instead of a dish.
	SummaryDayCount int `yaml:"summaryDayCount" json:"summaryDayCount"`

	// MaxMeals caps the number of meals returned for one document.
	MaxMeals int `yaml:"maxMeals" json:"maxMeals"`

	// MaxNameLength caps a meal name, in runes, before an ellipsis is appended.
	MaxNameLength int `yaml:"maxNameLength" json:"maxNameLength"`
}

// DefaultRules returns the built-in rule tables for Czech lunch menus.
func DefaultRules() Rules {
	weekdays := make([]string, 0, len(Weekdays))
	for _, d := range Weekdays {
		weekdays = append(weekdays, string(d))
	}

	return Rules{
		Weekdays: weekdays,
		NoisePhrases: []string{
			"menu",
			"polední menu",
			"poledni menu",
			"denní menu",
			"denni menu",
			"týdenní menu",
			"tydenni menu",
			"obědové menu",
			"nabídka",
			"polévka",
			"polévky",
			"hlavní jídlo",
			"hlavní jídla",
			"specialita",
			"speciality",
			"dezert",
			"dezerty",
			"příloha",
			"přílohy",
			"salát",
			"saláty",
		},
		NoiseSubstrings: []string{
			"otevírací doba",
			"rezervujte",
			"rezervace",
			"kontakt",
			"informační povinnost",
			"gdpr",
			"ochrana osobních údajů",
			"zpracování osobních údajů",
			"cookie",
			"seznam alergenů",
			"alergeny jsou uvedeny",
			"všechna práva vyhrazena",
			"©",
		},
		NoisePatterns: []string{
			`https?://`,
			`www\.[a-z0-9-]+\.[a-z]{2,}`,
			`\S+@\S+\.\S+`,
			`(?:^|\D)\d{3}\s?\d{3}\s?\d{3}(?:\D|$)`,
			`^\d{1,2}\.\s?\d{1,2}\.\s?(?:\d{2,4})?$`,
		},
		Placeholders: []string{
			"nabídku pro vás připravujeme",
			"menu pro vás připravujeme",
			"menu zatím není k dispozici",
		},
		Currencies:          []string{"kč", "czk"},
		MinPricedNameLength: 3,
		MinNameLength:       5,
		SummaryDayCount:     3,
		MaxMeals:            80,
		MaxNameLength:       140,
	}
}

// Validate returns an error if the rules cannot drive the parser.
func (r *Rules) Validate() error {
	if len(r.Weekdays) == 0 {
		return Errorf(EINVALID, "rules: weekday vocabulary required")
	}
	for _, d := range r.Weekdays {
		if key := dayKey(d); key != "" {
			if _, ok := canonicalDays[key]; !ok {
				return Errorf(EINVALID, "rules: %q is not a weekday name", d)
			}
		}
	}
	if len(r.Currencies) == 0 {
		return Errorf(EINVALID, "rules: at least one currency marker required")
	}
	if r.MinPricedNameLength < 1 {
		return Errorf(EINVALID, "rules: minPricedNameLength must be positive")
	}
	if r.MinNameLength < 1 {
		return Errorf(EINVALID, "rules: minNameLength must be positive")
	}
	if r.SummaryDayCount < 2 {
		return Errorf(EINVALID, "rules: summaryDayCount must be at least 2")
	}
	if r.MaxMeals < 1 {
		return Errorf(EINVALID, "rules: maxMeals must be positive")
	}
	if r.MaxNameLength < 1 {
		return Errorf(EINVALID, "rules: maxNameLength must be positive")
	}
	return nil
}
