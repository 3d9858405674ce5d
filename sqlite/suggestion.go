package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/lunchmenu"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ lunchmenu.SuggestionService = (*SuggestionService)(nil)

// SuggestionService implements lunchmenu.SuggestionService using SQLite.
type SuggestionService struct {
	db *DB
}

// NewSuggestionService creates a new SuggestionService.
func NewSuggestionService(db *DB) *SuggestionService {
	return &SuggestionService{db: db}
}

// CreateSuggestion validates and stores a suggestion.
func (s *SuggestionService) CreateSuggestion(ctx context.Context, sg *lunchmenu.Suggestion) error {
	if err := sg.Validate(); err != nil {
		return err
	}

	sg.ID = uuid.New().String()
	sg.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO suggestions (id, name, menu_url, submitter, email, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sg.ID, sg.Name, sg.MenuURL, sg.Submitter, sg.Email, formatRFC3339(sg.CreatedAt))

	return err
}

// FindSuggestions returns all suggestions, newest first.
func (s *SuggestionService) FindSuggestions(ctx context.Context) ([]*lunchmenu.Suggestion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, menu_url, submitter, email, created_at
		FROM suggestions
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suggestions []*lunchmenu.Suggestion
	for rows.Next() {
		var sg lunchmenu.Suggestion
		var createdAt string
		if err := rows.Scan(&sg.ID, &sg.Name, &sg.MenuURL, &sg.Submitter, &sg.Email, &createdAt); err != nil {
			return nil, err
		}
		if sg.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		suggestions = append(suggestions, &sg)
	}

	return suggestions, rows.Err()
}

// DeleteSuggestion removes a suggestion.
func (s *SuggestionService) DeleteSuggestion(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM suggestions WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return lunchmenu.Errorf(lunchmenu.ENOTFOUND, "suggestion not found")
	}
	return nil
}
