package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/lunchmenu"
	"github.com/fwojciec/lunchmenu/collect"
	"github.com/fwojciec/lunchmenu/fs"
	"github.com/fwojciec/lunchmenu/goquery"
	lmhttp "github.com/fwojciec/lunchmenu/http"
	"github.com/fwojciec/lunchmenu/pdf"
	"github.com/fwojciec/lunchmenu/rod"
	"github.com/fwojciec/lunchmenu/s3"
	lmslog "github.com/fwojciec/lunchmenu/slog"
	"github.com/fwojciec/lunchmenu/sqlite"
	"github.com/fwojciec/lunchmenu/yaml"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	// Values already in the environment take precedence over .env.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); --db overrides it.
	DBPath string

	// Stdin is read by commands that accept piped input.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// offlineCommands don't touch the database.
var offlineCommands = map[string]bool{
	"parse":      true,
	"analyze":    true,
	"show-rules": true,
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
		Now:    time.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("lunchmenu"),
		kong.Description("Collect today's lunch menus from restaurant websites"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'lunchmenu --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.Rules = lunchmenu.DefaultRules()
	if cli.Rules != "" {
		if deps.Rules, err = yaml.LoadRules(cli.Rules); err != nil {
			fmt.Fprintf(stderr, "error: %s\n", lunchmenu.ErrorMessage(err))
			return err
		}
	}
	menuParser, err := lunchmenu.NewParser(deps.Rules)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", lunchmenu.ErrorMessage(err))
		return err
	}
	deps.Extractor = lmslog.NewLoggingExtractor(
		collect.NewExtractor(menuParser, goquery.NewLineSource(), pdf.NewLineSource()),
		deps.Logger,
	)
	deps.Loader = fs.NewLoader()

	if offlineCommands[cmd] {
		return kongCtx.Run(deps)
	}

	dbPath := m.DBPath
	if cli.DB != "" {
		dbPath = cli.DB
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LUNCHMENU_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	deps.Restaurants = sqlite.NewRestaurantService(m.DB)
	deps.Cache = sqlite.NewMenuCache(m.DB)
	deps.Suggestions = sqlite.NewSuggestionService(m.DB)

	if cmd == "menus" {
		browser := rod.NewFetcher(rod.NewBrowserManager())
		defer browser.Close()

		deps.Collector = &collect.Collector{
			Fetcher:        lmslog.NewLoggingFetcher(lmhttp.NewFetcher(lmhttp.WithTimeout(cli.Timeout)), deps.Logger),
			BrowserFetcher: lmslog.NewLoggingFetcher(browser, deps.Logger),
			Extractor:      deps.Extractor,
			Cache:          deps.Cache,
			RateLimiter:    collect.NewDomainLimiter(collect.DefaultRequestsPerSecond),
			LinkFinder:     goquery.NewLinkFinder(),
			Concurrency:    cli.Concurrency,
			Timeout:        cli.Timeout,
			Logger:         deps.Logger,
		}

		if cli.Menus.Calories {
			key := os.Getenv("USDA_KEY")
			if key == "" {
				fmt.Fprintln(stderr, "USDA_KEY environment variable not set. Get a key at https://fdc.nal.usda.gov/api-key-signup")
				return lunchmenu.Errorf(lunchmenu.EINVALID, "USDA_KEY not set")
			}
			deps.Calories = lmslog.NewLoggingCalorieService(lmhttp.NewUSDAClient(key), deps.Logger)
		}

		if cli.Menus.Publish {
			publisher, err := s3.Open(ctx, s3.ConfigFromEnv())
			if err != nil {
				fmt.Fprintf(stderr, "error: %s\n", lunchmenu.ErrorMessage(err))
				return err
			}
			deps.Publisher = publisher
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("LUNCHMENU_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "lunchmenu.db"
	}
	dir := filepath.Join(home, ".lunchmenu")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "lunchmenu.db")
}
