package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fwojciec/lunchmenu"
	"github.com/fwojciec/lunchmenu/collect"
	"github.com/fwojciec/lunchmenu/fs"
)

// Run executes the menus command.
func (c *MenusCmd) Run(deps *Dependencies) error {
	restaurants, err := deps.Restaurants.FindRestaurants(deps.Ctx, lunchmenu.RestaurantFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunchmenu.ErrorMessage(err))
		return err
	}

	if len(restaurants) == 0 {
		fmt.Fprintln(deps.Stdout, "No restaurants found. Use 'lunchmenu add' to register one.")
		return nil
	}

	if len(c.Restaurants) > 0 {
		if restaurants, err = selectRestaurants(restaurants, c.Restaurants); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", lunchmenu.ErrorMessage(err))
			return err
		}
	}

	progress := func(event collect.ProgressEvent) {
		switch event.Type {
		case collect.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.Restaurant, event.Failure.Message)
		case collect.ProgressCompleted:
			deps.Logger.Debug("collected", "restaurant", event.Restaurant, "completed", event.Completed, "total", event.Total)
		}
	}
	menus := deps.Collector.CollectAll(deps.Ctx, restaurants, progress)

	filter := lunchmenu.TodayFilter(deps.now())
	if c.All {
		filter.Mode = lunchmenu.ViewAll
	}
	menus = filter.Apply(menus)

	if c.Calories && deps.Calories != nil {
		if err := collect.EnrichCalories(deps.Ctx, deps.Calories, menus); err != nil {
			return err
		}
	}

	if c.Export != "" {
		if err := exportMenus(deps, c.Export, menus); err != nil {
			fmt.Fprintf(deps.Stderr, "error: export: %v\n", err)
			return err
		}
	}

	if c.Publish && deps.Publisher != nil {
		locations, err := deps.Publisher.Publish(deps.Ctx, deps.now(), menus)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: publish: %s\n", lunchmenu.ErrorMessage(err))
			return err
		}
		for _, loc := range locations {
			fmt.Fprintf(deps.Stderr, "published %s\n", loc)
		}
	}

	if c.JSON {
		return writeJSON(deps.Stdout, displayMenus(menus))
	}
	fmt.Fprintln(deps.Stdout, lunchmenu.FormatMenus(menus))
	return nil
}

// selectRestaurants keeps the restaurants named by want, matched by ID or
// case-insensitive name, in registration order.
func selectRestaurants(all []*lunchmenu.Restaurant, want []string) ([]*lunchmenu.Restaurant, error) {
	var out []*lunchmenu.Restaurant
	matched := make(map[string]bool, len(want))
	for _, r := range all {
		for _, w := range want {
			if r.ID == w || strings.EqualFold(r.Name, w) {
				out = append(out, r)
				matched[w] = true
				break
			}
		}
	}
	for _, w := range want {
		if !matched[w] {
			return nil, lunchmenu.Errorf(lunchmenu.ENOTFOUND, "restaurant %q not found", w)
		}
	}
	return out, nil
}

// displayMenus replaces empty meal lists with their placeholder meal.
func displayMenus(menus []*lunchmenu.Menu) []*lunchmenu.Menu {
	out := make([]*lunchmenu.Menu, len(menus))
	for i, m := range menus {
		cp := *m
		cp.Meals = m.DisplayMeals()
		out[i] = &cp
	}
	return out
}

func exportMenus(deps *Dependencies, dir string, menus []*lunchmenu.Menu) error {
	store := fs.NewMenuStore(filepath.Dir(dir), filepath.Base(dir))
	for _, m := range menus {
		if err := store.Save(deps.Ctx, m); err != nil {
			_ = store.Abort()
			return err
		}
	}
	return store.Commit()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
