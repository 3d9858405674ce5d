package lunchmenu_test

import (
	"testing"

	"github.com/fwojciec/lunchmenu"
	"github.com/stretchr/testify/assert"
)

func TestFormatMenus(t *testing.T) {
	t.Parallel()

	t.Run("formats meals with day and price", func(t *testing.T) {
		t.Parallel()

		menus := []*lunchmenu.Menu{{
			Restaurant: "U Lva",
			Meals: []*lunchmenu.Meal{
				{Name: "Guláš", Price: intPtr(165), Day: lunchmenu.Monday},
				{Name: "Polévka"},
			},
		}}

		result := lunchmenu.FormatMenus(menus)

		assert.Equal(t, "## U Lva\n- [pondělí] Guláš … 165 Kč\n- Polévka", result)
	})

	t.Run("uses source URL when name is empty", func(t *testing.T) {
		t.Parallel()

		menus := []*lunchmenu.Menu{{SourceURL: "https://example.cz/menu", Meals: []*lunchmenu.Meal{{Name: "Guláš"}}}}

		assert.Equal(t, "## https://example.cz/menu\n- Guláš", lunchmenu.FormatMenus(menus))
	})

	t.Run("shows the failure placeholder", func(t *testing.T) {
		t.Parallel()

		menus := []*lunchmenu.Menu{
			{Restaurant: "A", Meals: []*lunchmenu.Meal{{Name: "Guláš"}}},
			{Restaurant: "B", Failure: &lunchmenu.Failure{Code: lunchmenu.EEMPTY}},
		}

		expected := "## A\n- Guláš\n\n## B\n- Menu se nepodařilo vyčíst (prázdný výstup)."
		assert.Equal(t, expected, lunchmenu.FormatMenus(menus))
	})

	t.Run("returns empty string for empty slice", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, lunchmenu.FormatMenus(nil))
	})
}

func TestFormatMeal(t *testing.T) {
	t.Parallel()

	m := &lunchmenu.Meal{Name: "Řízek", Price: intPtr(179), Calories: intPtr(820)}

	assert.Equal(t, "- Řízek … 179 Kč (820 kcal)", lunchmenu.FormatMeal(m))
}
