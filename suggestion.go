package lunchmenu

import (
	"context"
	"net/mail"
	"strings"
	"time"
)

// Suggestion is a visitor's proposal for a new restaurant.
type Suggestion struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MenuURL   string    `json:"menuUrl"`
	Submitter string    `json:"submitter"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate trims the suggestion's fields and returns an error if a required
// field is missing or malformed.
func (s *Suggestion) Validate() error {
	s.Name = strings.TrimSpace(s.Name)
	s.MenuURL = strings.TrimSpace(s.MenuURL)
	s.Submitter = strings.TrimSpace(s.Submitter)
	s.Email = strings.TrimSpace(s.Email)

	if s.Name == "" {
		return Errorf(EINVALID, "Chybí název restaurace")
	}
	if s.Email == "" {
		return Errorf(EINVALID, "Chybí email")
	}
	if !isEmail(s.Email) {
		return Errorf(EINVALID, "Email nevypadá správně")
	}
	if s.MenuURL != "" && !isHTTPURL(s.MenuURL) {
		return Errorf(EINVALID, "Odkaz na menu musí být http(s) URL")
	}
	return nil
}

// isEmail accepts a bare address with a dotted domain, no display name.
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

// SuggestionService manages restaurant suggestions.
type SuggestionService interface {
	// CreateSuggestion validates and stores a suggestion, assigning its ID
	// and creation time.
	CreateSuggestion(ctx context.Context, s *Suggestion) error

	// FindSuggestions returns all suggestions, newest first.
	FindSuggestions(ctx context.Context) ([]*Suggestion, error)

	// DeleteSuggestion removes a suggestion.
	// Returns ENOTFOUND if it does not exist.
	DeleteSuggestion(ctx context.Context, id string) error
}
