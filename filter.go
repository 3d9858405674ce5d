package lunchmenu

import "time"

// ViewMode selects which meals a view shows.
type ViewMode string

const (
	ViewToday ViewMode = "today"
	ViewAll   ViewMode = "all"
)

// ViewFilter narrows collected menus for display.
type ViewFilter struct {
	Mode ViewMode

	// Day is the weekday used in ViewToday mode.
	Day Weekday

	// Restaurants limits the view to these restaurant IDs. Empty means all.
	Restaurants []string
}

// TodayFilter returns a filter showing meals for the weekday of now.
func TodayFilter(now time.Time) ViewFilter {
	return ViewFilter{Mode: ViewToday, Day: WeekdayOf(now)}
}

// FilterMeals returns the meals tagged with day. When no meal carries that
// day, every meal is returned so that a menu without day markers (or one
// that lists another day only) still shows something.
func FilterMeals(meals []*Meal, day Weekday) []*Meal {
	var out []*Meal
	for _, m := range meals {
		if m.Day == day {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return meals
	}
	return out
}

// Apply returns copies of the menus selected by the filter with their meals
// narrowed. The input menus are not modified.
func (f ViewFilter) Apply(menus []*Menu) []*Menu {
	var allow map[string]bool
	if len(f.Restaurants) > 0 {
		allow = make(map[string]bool, len(f.Restaurants))
		for _, id := range f.Restaurants {
			allow[id] = true
		}
	}

	out := make([]*Menu, 0, len(menus))
	for _, m := range menus {
		if allow != nil && !allow[m.RestaurantID] {
			continue
		}
		cp := *m
		if f.Mode == ViewToday && f.Day != "" {
			cp.Meals = FilterMeals(m.Meals, f.Day)
		}
		out = append(out, &cp)
	}
	return out
}
