package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/lunchmenu"
	"github.com/fwojciec/lunchmenu/collect"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Now    func() time.Time

	Rules       lunchmenu.Rules
	Loader      lunchmenu.DocumentFetcher
	Extractor   lunchmenu.MenuExtractor
	Restaurants lunchmenu.RestaurantService
	Cache       lunchmenu.MenuCache
	Suggestions lunchmenu.SuggestionService
	Collector   *collect.Collector
	Calories    lunchmenu.CalorieService
	Publisher   lunchmenu.MenuPublisher
}

func (d *Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB          string        `name:"db" help:"Database path (default: $LUNCHMENU_DB or ~/.lunchmenu/lunchmenu.db)"`
	Rules       string        `help:"YAML file overriding the parser rules"`
	Verbose     bool          `short:"v" help:"Log every fetch and extraction"`
	Concurrency int           `short:"c" default:"8" help:"Restaurants fetched at once"`
	Timeout     time.Duration `short:"t" default:"15s" help:"Timeout per fetch"`

	Add         AddCmd         `cmd:"" help:"Register a restaurant"`
	List        ListCmd        `cmd:"" help:"List registered restaurants"`
	Delete      DeleteCmd      `cmd:"" help:"Remove a restaurant and its cached menus"`
	Menus       MenusCmd       `cmd:"" help:"Show today's lunch menus"`
	Parse       ParseCmd       `cmd:"" help:"Extract meals from a local HTML or PDF file"`
	Recache     RecacheCmd     `cmd:"" help:"Drop cached menus so the next request refetches them"`
	Suggest     SuggestCmd     `cmd:"" help:"Suggest a restaurant to add"`
	Suggestions SuggestionsCmd `cmd:"" help:"List restaurant suggestions"`
	Dismiss     DismissCmd     `cmd:"" help:"Remove a restaurant suggestion"`
	Analyze     AnalyzeCmd     `cmd:"" help:"Group dishes by main ingredient"`
	ShowRules   ShowRulesCmd   `cmd:"" help:"Print the parser rules as YAML"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name       string   `arg:"" help:"Restaurant name"`
	URL        string   `arg:"" help:"Menu page or PDF URL"`
	Alternates []string `short:"a" name:"alternate" help:"Fallback source tried when the URL yields no meals (repeatable)"`
	Kind       string   `help:"Source kind: html, pdf or image (detected when empty)"`
	JS         bool     `name:"js" help:"Render the page in a headless browser"`
	Mode       string   `default:"parse" enum:"parse,embed" help:"Show parsed meals or embed the page"`
	Force      bool     `short:"f" help:"Replace an existing restaurant with the same name"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Restaurant name"`
	Force bool   `help:"Confirm deletion"`
}

// MenusCmd is the "menus" subcommand.
type MenusCmd struct {
	All         bool     `help:"Show the whole week instead of today"`
	JSON        bool     `name:"json" help:"Print menus as JSON"`
	Calories    bool     `help:"Estimate calories per dish (needs USDA_KEY)"`
	Restaurants []string `short:"r" name:"restaurant" help:"Only these restaurants, by name or ID (repeatable)"`
	Export      string   `type:"path" help:"Also write one markdown file per restaurant into this directory"`
	Publish     bool     `help:"Also upload the menus to the bucket in LUNCHMENU_S3_BUCKET"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File string `arg:"" help:"HTML or PDF file"`
	JSON bool   `name:"json" help:"Print meals as JSON"`
	Day  string `help:"Only show meals for this weekday, e.g. pondělí"`
}

// RecacheCmd is the "recache" subcommand.
type RecacheCmd struct{}

// SuggestCmd is the "suggest" subcommand.
type SuggestCmd struct {
	Name  string `arg:"" help:"Restaurant name"`
	URL   string `name:"url" help:"Menu URL"`
	Email string `required:"" help:"Contact e-mail"`
	From  string `help:"Your name"`
}

// SuggestionsCmd is the "suggestions" subcommand.
type SuggestionsCmd struct{}

// DismissCmd is the "dismiss" subcommand.
type DismissCmd struct {
	ID string `arg:"" help:"Suggestion ID"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	File string `arg:"" optional:"" help:"File with one dish per line (default: stdin)"`
	JSON bool   `name:"json" help:"Print groups as JSON"`
}

// ShowRulesCmd is the "show-rules" subcommand.
type ShowRulesCmd struct{}
