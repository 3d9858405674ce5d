package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/fwojciec/lunchmenu"
)

// Compile-time interface verification.
var _ lunchmenu.MenuCache = (*MenuCache)(nil)

const cacheBusterKey = "cache_buster"

// MenuCache implements lunchmenu.MenuCache using SQLite.
type MenuCache struct {
	db *DB
}

// NewMenuCache creates a new MenuCache.
func NewMenuCache(db *DB) *MenuCache {
	return &MenuCache{db: db}
}

// FindMenu returns the menu cached for a restaurant under key.
func (c *MenuCache) FindMenu(ctx context.Context, restaurantID, key string) (*lunchmenu.Menu, error) {
	var m lunchmenu.Menu
	var kind, meals, failureCode, failureMessage, fetchedAt string

	err := c.db.QueryRowContext(ctx, `
		SELECT restaurant_id, restaurant_name, source_url, kind, meals, failure_code, failure_message, content_hash, fetched_at
		FROM menus
		WHERE restaurant_id = ? AND cache_key = ?
	`, restaurantID, key).Scan(&m.RestaurantID, &m.Restaurant, &m.SourceURL, &kind, &meals,
		&failureCode, &failureMessage, &m.ContentHash, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, lunchmenu.Errorf(lunchmenu.ENOTFOUND, "menu not cached")
	}
	if err != nil {
		return nil, err
	}

	m.Kind = lunchmenu.SourceKind(kind)
	if err := json.Unmarshal([]byte(meals), &m.Meals); err != nil {
		return nil, fmt.Errorf("failed to parse meals: %w", err)
	}
	if failureCode != "" {
		m.Failure = &lunchmenu.Failure{Code: failureCode, Message: failureMessage}
	}
	if m.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}

	return &m, nil
}

// SaveMenu stores menu under key, replacing any previous entry.
func (c *MenuCache) SaveMenu(ctx context.Context, key string, menu *lunchmenu.Menu) error {
	if menu.RestaurantID == "" {
		return lunchmenu.Errorf(lunchmenu.EINVALID, "menu restaurant ID required")
	}

	meals := menu.Meals
	if meals == nil {
		meals = []*lunchmenu.Meal{}
	}
	b, err := json.Marshal(meals)
	if err != nil {
		return fmt.Errorf("failed to encode meals: %w", err)
	}

	var failureCode, failureMessage string
	if menu.Failure != nil {
		failureCode, failureMessage = menu.Failure.Code, menu.Failure.Message
	}

	fetchedAt := menu.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO menus (restaurant_id, cache_key, restaurant_name, source_url, kind, meals, failure_code, failure_message, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (restaurant_id, cache_key) DO UPDATE SET
			restaurant_name = excluded.restaurant_name,
			source_url = excluded.source_url,
			kind = excluded.kind,
			meals = excluded.meals,
			failure_code = excluded.failure_code,
			failure_message = excluded.failure_message,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, menu.RestaurantID, key, menu.Restaurant, menu.SourceURL, string(menu.Kind), string(b),
		failureCode, failureMessage, menu.ContentHash, formatRFC3339(fetchedAt))

	return err
}

// CacheBuster returns the current cache generation, 0 when never bumped.
func (c *MenuCache) CacheBuster(ctx context.Context) (int64, error) {
	return readBuster(c.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", cacheBusterKey))
}

// BumpCacheBuster increments the cache generation and drops every cached
// menu, since none of them can be hit again.
func (c *MenuCache) BumpCacheBuster(ctx context.Context) (int64, error) {
	tx, err := c.db.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	current, err := readBuster(tx.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", cacheBusterKey))
	if err != nil {
		return 0, err
	}
	next := current + 1

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, cacheBusterKey, strconv.FormatInt(next, 10)); err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM menus"); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return next, nil
}

func readBuster(row *sql.Row) (int64, error) {
	var value string
	err := row.Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse cache buster: %w", err)
	}
	return n, nil
}
