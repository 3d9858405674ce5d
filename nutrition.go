package lunchmenu

import (
	"context"
	"strings"
)

// CalorieService estimates the energy content of a dish.
type CalorieService interface {
	// Calories returns kilocalories per serving for a dish name.
	// Returns ENOTFOUND when no estimate exists.
	Calories(ctx context.Context, dish string) (int, error)
}

// NutritionKey is the lookup key for a dish name: folded, with allergen
// codes removed.
func NutritionKey(name string) string {
	return strings.ToLower(Normalize(StripAllergenCodes(name)))
}
