package collect

import (
	"context"

	"github.com/fwojciec/lunchmenu"
)

// EnrichCalories fills in Meal.Calories for every meal in menus. Dishes are
// looked up once per NutritionKey; a failed lookup leaves Calories nil.
// It stops early and returns the context error when ctx is done.
func EnrichCalories(ctx context.Context, svc lunchmenu.CalorieService, menus []*lunchmenu.Menu) error {
	memo := make(map[string]*int)
	for _, menu := range menus {
		for _, meal := range menu.Meals {
			if err := ctx.Err(); err != nil {
				return err
			}

			key := lunchmenu.NutritionKey(meal.Name)
			if key == "" {
				continue
			}

			kcal, ok := memo[key]
			if !ok {
				if v, err := svc.Calories(ctx, key); err == nil {
					kcal = &v
				}
				memo[key] = kcal
			}
			if kcal != nil {
				meal.SetCalories(*kcal)
			}
		}
	}
	return nil
}
