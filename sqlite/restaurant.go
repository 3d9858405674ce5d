package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/lunchmenu"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ lunchmenu.RestaurantService = (*RestaurantService)(nil)

const restaurantColumns = "id, name, url, kind, mode, render_js, alternates, created_at, updated_at"

// RestaurantService implements lunchmenu.RestaurantService using SQLite.
type RestaurantService struct {
	db *DB
}

// NewRestaurantService creates a new RestaurantService.
func NewRestaurantService(db *DB) *RestaurantService {
	return &RestaurantService{db: db}
}

// CreateRestaurant creates a new restaurant.
func (s *RestaurantService) CreateRestaurant(ctx context.Context, r *lunchmenu.Restaurant) error {
	if r.Mode == "" {
		r.Mode = lunchmenu.ModeParse
	}
	if err := r.Validate(); err != nil {
		return err
	}

	alternates, err := encodeAlternates(r.Alternates)
	if err != nil {
		return err
	}

	r.ID = uuid.New().String()
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO restaurants (`+restaurantColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Name, r.URL, string(r.Kind), string(r.Mode), r.RenderJS, alternates,
		formatRFC3339(r.CreatedAt), formatRFC3339(r.UpdatedAt))

	return err
}

// FindRestaurantByID retrieves a restaurant by ID.
func (s *RestaurantService) FindRestaurantByID(ctx context.Context, id string) (*lunchmenu.Restaurant, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+restaurantColumns+" FROM restaurants WHERE id = ?", id)

	r, err := scanRestaurant(row)
	if err == sql.ErrNoRows {
		return nil, lunchmenu.Errorf(lunchmenu.ENOTFOUND, "restaurant not found")
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// FindRestaurants retrieves restaurants matching the filter in registration order.
func (s *RestaurantService) FindRestaurants(ctx context.Context, filter lunchmenu.RestaurantFilter) ([]*lunchmenu.Restaurant, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + restaurantColumns + " FROM restaurants WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY rowid")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []*lunchmenu.Restaurant
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, r)
	}

	return restaurants, rows.Err()
}

// UpdateRestaurant updates an existing restaurant.
func (s *RestaurantService) UpdateRestaurant(ctx context.Context, id string, upd lunchmenu.RestaurantUpdate) (*lunchmenu.Restaurant, error) {
	r, err := s.FindRestaurantByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		r.Name = *upd.Name
	}
	if upd.URL != nil {
		r.URL = *upd.URL
	}
	if upd.Kind != nil {
		r.Kind = *upd.Kind
	}
	if upd.Mode != nil {
		r.Mode = *upd.Mode
	}
	if upd.RenderJS != nil {
		r.RenderJS = *upd.RenderJS
	}
	if upd.Alternates != nil {
		r.Alternates = *upd.Alternates
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	alternates, err := encodeAlternates(r.Alternates)
	if err != nil {
		return nil, err
	}

	r.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE restaurants
		SET name = ?, url = ?, kind = ?, mode = ?, render_js = ?, alternates = ?, updated_at = ?
		WHERE id = ?
	`, r.Name, r.URL, string(r.Kind), string(r.Mode), r.RenderJS, alternates,
		formatRFC3339(r.UpdatedAt), id)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// DeleteRestaurant permanently removes a restaurant. Its cached menus are
// removed by the foreign key cascade.
func (s *RestaurantService) DeleteRestaurant(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM restaurants WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return lunchmenu.Errorf(lunchmenu.ENOTFOUND, "restaurant not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRestaurant(row scanner) (*lunchmenu.Restaurant, error) {
	var r lunchmenu.Restaurant
	var kind, mode, alternates, createdAt, updatedAt string

	if err := row.Scan(&r.ID, &r.Name, &r.URL, &kind, &mode, &r.RenderJS, &alternates, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	r.Kind = lunchmenu.SourceKind(kind)
	r.Mode = lunchmenu.Mode(mode)

	if err := json.Unmarshal([]byte(alternates), &r.Alternates); err != nil {
		return nil, fmt.Errorf("failed to parse alternates: %w", err)
	}
	if len(r.Alternates) == 0 {
		r.Alternates = nil
	}

	var err error
	if r.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &r, nil
}

func encodeAlternates(alternates []string) (string, error) {
	if alternates == nil {
		alternates = []string{}
	}
	b, err := json.Marshal(alternates)
	if err != nil {
		return "", fmt.Errorf("failed to encode alternates: %w", err)
	}
	return string(b), nil
}
