package lunchmenu

import (
	"context"
	"fmt"
	"time"
)

// Failure explains why a restaurant's menu could not be read.
// Code is one of the extraction error codes (EFETCH, ENOTEXT, EEMPTY, ...).
type Failure struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewFailure converts an error into a Failure. Returns nil for a nil error.
func NewFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	return &Failure{Code: ErrorCode(err), Message: ErrorMessage(err)}
}

// NeedsOCR reports whether the source was an image or a scan without a text
// layer, which the UI messages differently from a generic failure.
func (f *Failure) NeedsOCR() bool {
	return f.Code == ENOTEXT || f.Code == EUNSUPPORTED
}

// Placeholder returns the user-visible text shown instead of a menu.
func (f *Failure) Placeholder() string {
	switch f.Code {
	case EFETCH:
		return fmt.Sprintf("Nepodařilo se načíst (%s)", f.Message)
	case ETOOLARGE:
		return "Menu je příliš velké na zpracování."
	case EUNSUPPORTED:
		return "Menu je obrázek – parsování obrázků není podporované."
	case ENOTEXT:
		return "Menu je naskenované PDF bez textu – bylo by potřeba OCR."
	case EEMPTY:
		return "Menu se nepodařilo vyčíst (prázdný výstup)."
	}
	return fmt.Sprintf("Chyba: %s", f.Message)
}

// Menu is the extraction result for one restaurant.
type Menu struct {
	RestaurantID string     `json:"restaurantId"`
	Restaurant   string     `json:"name"`
	SourceURL    string     `json:"sourceUrl"`
	Kind         SourceKind `json:"kind,omitempty"`
	Meals        []*Meal    `json:"meals"`
	Failure      *Failure   `json:"failure,omitempty"`
	ContentHash  string     `json:"contentHash,omitempty"`
	FetchedAt    time.Time  `json:"fetchedAt"`
}

// DisplayMeals returns the meals to show. When there are none it returns a
// single placeholder meal explaining why, so a menu is never shown empty
// without a reason.
func (m *Menu) DisplayMeals() []*Meal {
	if len(m.Meals) > 0 {
		return m.Meals
	}
	f := m.Failure
	if f == nil {
		f = &Failure{Code: EEMPTY}
	}
	return []*Meal{{Name: f.Placeholder()}}
}

// MenuCache stores extracted menus so repeated requests don't refetch sources.
type MenuCache interface {
	// FindMenu returns the menu cached for a restaurant under key.
	// Returns ENOTFOUND on a cache miss.
	FindMenu(ctx context.Context, restaurantID, key string) (*Menu, error)

	// SaveMenu stores menu under key, replacing any previous entry.
	SaveMenu(ctx context.Context, key string, menu *Menu) error

	// CacheBuster returns the current cache generation.
	CacheBuster(ctx context.Context) (int64, error)

	// BumpCacheBuster starts a new cache generation, invalidating every
	// entry, and returns it.
	BumpCacheBuster(ctx context.Context) (int64, error)
}

// CacheKey returns the cache key for menus fetched on day under a cache generation.
func CacheKey(day time.Time, buster int64) string {
	return fmt.Sprintf("%s/%d", day.Format(time.DateOnly), buster)
}

// MenuPublisher makes a day's menus available outside the local machine.
type MenuPublisher interface {
	// Publish uploads menus collected on day and returns the location of
	// each published file.
	Publish(ctx context.Context, day time.Time, menus []*Menu) ([]string, error)
}
