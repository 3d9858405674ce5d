package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/lunchmenu"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	if c.Force {
		existing, err := deps.Restaurants.FindRestaurants(deps.Ctx, lunchmenu.RestaurantFilter{Name: &c.Name})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", lunchmenu.ErrorMessage(err))
			return err
		}
		for _, r := range existing {
			if err := deps.Restaurants.DeleteRestaurant(deps.Ctx, r.ID); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", lunchmenu.ErrorMessage(err))
				return err
			}
		}
	}

	r := &lunchmenu.Restaurant{
		Name:       c.Name,
		URL:        c.URL,
		Kind:       lunchmenu.SourceKind(strings.ToLower(c.Kind)),
		Mode:       lunchmenu.Mode(c.Mode),
		RenderJS:   c.JS,
		Alternates: c.Alternates,
	}

	if err := deps.Restaurants.CreateRestaurant(deps.Ctx, r); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunchmenu.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added restaurant %q (%s)\n", r.Name, r.ID)
	if r.DeclaredKind() == lunchmenu.KindImage {
		fmt.Fprintln(deps.Stdout, "  Note: image menus can't be parsed; the menu will show a placeholder.")
	}
	return nil
}

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	restaurants, err := deps.Restaurants.FindRestaurants(deps.Ctx, lunchmenu.RestaurantFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunchmenu.ErrorMessage(err))
		return err
	}

	if len(restaurants) == 0 {
		fmt.Fprintln(deps.Stdout, "No restaurants found. Use 'lunchmenu add' to register one.")
		return nil
	}

	for _, r := range restaurants {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s%s\n", r.ID, r.Name, r.URL, restaurantFlags(r))
		for _, alt := range r.Alternates {
			fmt.Fprintf(deps.Stdout, "    or %s\n", alt)
		}
	}
	return nil
}

func restaurantFlags(r *lunchmenu.Restaurant) string {
	var flags []string
	if r.Kind != lunchmenu.KindUnknown {
		flags = append(flags, string(r.Kind))
	}
	if r.RenderJS {
		flags = append(flags, "js")
	}
	if r.Mode == lunchmenu.ModeEmbed {
		flags = append(flags, "embed")
	}
	if len(flags) == 0 {
		return ""
	}
	return "  [" + strings.Join(flags, ", ") + "]"
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return lunchmenu.Errorf(lunchmenu.EINVALID, "use --force to confirm deletion")
	}

	restaurants, err := deps.Restaurants.FindRestaurants(deps.Ctx, lunchmenu.RestaurantFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunchmenu.ErrorMessage(err))
		return err
	}

	if len(restaurants) == 0 {
		fmt.Fprintf(deps.Stderr, "error: restaurant %q not found. Use 'lunchmenu list' to see registered restaurants.\n", c.Name)
		return lunchmenu.Errorf(lunchmenu.ENOTFOUND, "restaurant %q not found", c.Name)
	}

	r := restaurants[0]
	if err := deps.Restaurants.DeleteRestaurant(deps.Ctx, r.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunchmenu.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted restaurant %q\n", r.Name)
	return nil
}
