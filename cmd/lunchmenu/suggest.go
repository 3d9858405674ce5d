package main

import (
	"fmt"

	"github.com/fwojciec/lunchmenu"
)

// Run executes the suggest command.
func (c *SuggestCmd) Run(deps *Dependencies) error {
	s := &lunchmenu.Suggestion{
		Name:      c.Name,
		MenuURL:   c.URL,
		Submitter: c.From,
		Email:     c.Email,
	}

	if err := deps.Suggestions.CreateSuggestion(deps.Ctx, s); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunchmenu.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Thanks! Suggestion %q saved (%s)\n", s.Name, s.ID)
	return nil
}

// Run executes the suggestions command.
func (c *SuggestionsCmd) Run(deps *Dependencies) error {
	suggestions, err := deps.Suggestions.FindSuggestions(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunchmenu.ErrorMessage(err))
		return err
	}

	if len(suggestions) == 0 {
		fmt.Fprintln(deps.Stdout, "No suggestions.")
		return nil
	}

	for _, s := range suggestions {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", s.ID, s.CreatedAt.Format("2006-01-02"), s.Name)
		if s.MenuURL != "" {
			fmt.Fprintf(deps.Stdout, "    %s\n", s.MenuURL)
		}
		from := s.Email
		if s.Submitter != "" {
			from = fmt.Sprintf("%s <%s>", s.Submitter, s.Email)
		}
		fmt.Fprintf(deps.Stdout, "    from %s\n", from)
	}
	return nil
}

// Run executes the dismiss command.
func (c *DismissCmd) Run(deps *Dependencies) error {
	if err := deps.Suggestions.DeleteSuggestion(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunchmenu.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Dismissed suggestion %s\n", c.ID)
	return nil
}
