package lunchmenu

import (
	"context"
	"net/url"
	"time"
)

// Mode controls how the front-end presents a restaurant.
type Mode string

// Restaurant presentation modes.
const (
	ModeParse Mode = "parse"
	ModeEmbed Mode = "embed"
)

// Restaurant is a registered menu source.
type Restaurant struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	URL  string     `json:"url"`
	Kind SourceKind `json:"kind,omitempty"`
	Mode Mode       `json:"mode"`

	// RenderJS requests a headless browser because the menu is injected by
	// JavaScript and missing from the served HTML.
	RenderJS bool `json:"renderJs"`

	// Alternates are fallback sources tried in order when the primary
	// source yields no meals.
	Alternates []string `json:"alternates,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the restaurant contains invalid fields.
func (r *Restaurant) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "restaurant name required")
	}
	if r.URL == "" {
		return Errorf(EINVALID, "restaurant URL required")
	}
	if !isHTTPURL(r.URL) {
		return Errorf(EINVALID, "restaurant URL must be an http(s) URL: %q", r.URL)
	}
	for _, alt := range r.Alternates {
		if !isHTTPURL(alt) {
			return Errorf(EINVALID, "alternate URL must be an http(s) URL: %q", alt)
		}
	}
	if !r.Kind.Valid() {
		return Errorf(EINVALID, "unknown source kind %q", r.Kind)
	}
	switch r.Mode {
	case "", ModeParse, ModeEmbed:
	default:
		return Errorf(EINVALID, "unknown mode %q", r.Mode)
	}
	return nil
}

// DeclaredKind returns the kind set on the restaurant, or the kind implied
// by its URL when none is set.
func (r *Restaurant) DeclaredKind() SourceKind {
	if r.Kind != KindUnknown {
		return r.Kind
	}
	return KindFromURL(r.URL)
}

// Sources returns the primary URL followed by the alternates.
func (r *Restaurant) Sources() []string {
	return append([]string{r.URL}, r.Alternates...)
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// RestaurantService represents a service for managing restaurants.
type RestaurantService interface {
	// CreateRestaurant creates a new restaurant.
	CreateRestaurant(ctx context.Context, r *Restaurant) error

	// FindRestaurantByID retrieves a restaurant by ID.
	// Returns ENOTFOUND if the restaurant does not exist.
	FindRestaurantByID(ctx context.Context, id string) (*Restaurant, error)

	// FindRestaurants retrieves restaurants matching the filter, in
	// registration order.
	FindRestaurants(ctx context.Context, filter RestaurantFilter) ([]*Restaurant, error)

	// UpdateRestaurant updates an existing restaurant.
	// Returns ENOTFOUND if the restaurant does not exist.
	UpdateRestaurant(ctx context.Context, id string, upd RestaurantUpdate) (*Restaurant, error)

	// DeleteRestaurant permanently removes a restaurant and its cached menus.
	// Returns ENOTFOUND if the restaurant does not exist.
	DeleteRestaurant(ctx context.Context, id string) error
}

// RestaurantFilter represents a filter for FindRestaurants.
type RestaurantFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RestaurantUpdate represents fields that can be updated on a restaurant.
type RestaurantUpdate struct {
	Name       *string     `json:"name"`
	URL        *string     `json:"url"`
	Kind       *SourceKind `json:"kind"`
	Mode       *Mode       `json:"mode"`
	RenderJS   *bool       `json:"renderJs"`
	Alternates *[]string   `json:"alternates"`
}
