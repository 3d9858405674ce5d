package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/lunchmenu"
	"github.com/fwojciec/lunchmenu/collect"
)

// Run executes the parse command. Extraction failures are shown as the
// placeholder a menu would display; only unreadable files are errors.
func (c *ParseCmd) Run(deps *Dependencies) error {
	doc, err := deps.Loader.Fetch(deps.Ctx, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunchmenu.ErrorMessage(err))
		return err
	}

	meals, err := deps.Extractor.ExtractMenu(doc)
	menu := &lunchmenu.Menu{
		Restaurant:  filepath.Base(c.File),
		SourceURL:   doc.URL,
		Kind:        doc.Kind,
		Meals:       meals,
		Failure:     lunchmenu.NewFailure(err),
		ContentHash: collect.ComputeHash(doc.Body),
		FetchedAt:   deps.now(),
	}

	if c.Day != "" {
		menu.Meals = lunchmenu.FilterMeals(menu.Meals, lunchmenu.Weekday(strings.ToLower(c.Day)))
	}

	if c.JSON {
		return writeJSON(deps.Stdout, displayMenus([]*lunchmenu.Menu{menu})[0])
	}
	fmt.Fprintln(deps.Stdout, lunchmenu.FormatMenus([]*lunchmenu.Menu{menu}))
	return nil
}
