package lunchmenu

import (
	"encoding/json"
	"time"
)

// Weekday is a lower-cased Czech weekday name such as "pondělí".
// The zero value means the day is unknown.
type Weekday string

// Czech weekday names.
const (
	Sunday    Weekday = "neděle"
	Monday    Weekday = "pondělí"
	Tuesday   Weekday = "úterý"
	Wednesday Weekday = "středa"
	Thursday  Weekday = "čtvrtek"
	Friday    Weekday = "pátek"
	Saturday  Weekday = "sobota"
)

// Weekdays lists the weekday names indexed by time.Weekday.
var Weekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayOf returns the weekday name for t in t's location.
func WeekdayOf(t time.Time) Weekday {
	return Weekdays[t.Weekday()]
}

// MarshalJSON encodes an unknown day as null.
func (d Weekday) MarshalJSON() ([]byte, error) {
	if d == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}

// UnmarshalJSON decodes null as an unknown day.
func (d *Weekday) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*d = ""
		return nil
	}
	*d = Weekday(*s)
	return nil
}

// Meal is a single dish extracted from a menu.
//
// Price is in whole Czech crowns. Calories are never set by the extraction
// pipeline; a CalorieService fills them in afterwards.
type Meal struct {
	Name     string  `json:"name"`
	Price    *int    `json:"price"`
	Day      Weekday `json:"day"`
	Calories *int    `json:"calories"`
}

// HasPrice reports whether the meal carries a price.
func (m *Meal) HasPrice() bool {
	return m.Price != nil
}

// SetPrice sets the price unless one is already present.
// It reports whether the price was applied.
func (m *Meal) SetPrice(price int) bool {
	if m.Price != nil {
		return false
	}
	m.Price = &price
	return true
}

// SetCalories sets the calorie value.
func (m *Meal) SetCalories(kcal int) {
	m.Calories = &kcal
}
