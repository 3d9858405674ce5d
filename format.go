package lunchmenu

import (
	"fmt"
	"strings"
)

// FormatMenus renders menus as plain text for a terminal. Each menu gets a
// heading with the restaurant name followed by its display meals; menus are
// separated by blank lines.
func FormatMenus(menus []*Menu) string {
	if len(menus) == 0 {
		return ""
	}

	parts := make([]string, 0, len(menus))
	for _, m := range menus {
		header := m.Restaurant
		if header == "" {
			header = m.SourceURL
		}

		var sb strings.Builder
		sb.WriteString("## " + header)
		for _, meal := range m.DisplayMeals() {
			sb.WriteString("\n" + FormatMeal(meal))
		}
		parts = append(parts, sb.String())
	}

	return strings.Join(parts, "\n\n")
}

// FormatMeal renders a single meal as one line.
func FormatMeal(m *Meal) string {
	var sb strings.Builder
	sb.WriteString("- ")
	if m.Day != "" {
		sb.WriteString("[" + string(m.Day) + "] ")
	}
	sb.WriteString(m.Name)
	if m.Price != nil {
		fmt.Fprintf(&sb, " … %d Kč", *m.Price)
	}
	if m.Calories != nil {
		fmt.Fprintf(&sb, " (%d kcal)", *m.Calories)
	}
	return sb.String()
}
