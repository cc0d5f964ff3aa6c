package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/repackdb/repackdb"
	"github.com/repackdb/repackdb/crawl"
	"github.com/repackdb/repackdb/fs"
	"github.com/repackdb/repackdb/goquery"
	repackhttp "github.com/repackdb/repackdb/http"
	repackslog "github.com/repackdb/repackdb/slog"
	"github.com/repackdb/repackdb/sqlite"
	"github.com/repackdb/repackdb/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Overrides the config file when set before Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Service for end-to-end testing.
	RepackService repackdb.RepackService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: os.Getenv("REPACKDB_DB"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("repackdb"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'repackdb --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Errors are always logged; --verbose adds the info-level fetch and
	// upsert lines.
	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := yaml.LoadConfig(cli.Config)
	if err != nil {
		return err
	}
	deps.Config = cfg

	// Environment variable wins over the config file for the DB location.
	dbPath := cfg.DBPath
	if m.DBPath != "" {
		dbPath = m.DBPath
	}
	if dbPath == "" {
		dbPath = defaultDBPath()
	}

	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set REPACKDB_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	m.RepackService = sqlite.NewRepackService(m.DB)
	deps.DB = m.DB
	deps.Repacks = repackslog.NewLoggingRepackService(m.RepackService, deps.Logger)

	// Crawling commands need the full fetch pipeline.
	if cmd == "crawl" || cmd == "fetch" {
		blocklist, err := fs.LoadBlocklist(cfg.BlocklistPath)
		if err != nil {
			return fmt.Errorf("failed to load blocklist at %q: %w", cfg.BlocklistPath, err)
		}

		fetcher := repackhttp.NewFetcher(repackhttp.WithUserAgent(cfg.UserAgent))
		defer fetcher.Close()

		deps.Crawler = &crawl.Crawler{
			Fetcher:   repackslog.NewLoggingFetcher(fetcher, deps.Logger),
			Extractor: goquery.NewExtractor(),
			Blocklist: blocklist,
			Repacks:   deps.Repacks,
			Limiter:   crawl.NewLimiter(cfg.Delay),
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return repackdb.DefaultDBPath
	}
	dir := filepath.Join(home, ".repackdb")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "repacks.db")
}
