package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/repackdb/repackdb"
	"github.com/repackdb/repackdb/crawl"
	"github.com/repackdb/repackdb/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Config  repackdb.Config
	DB      *sqlite.DB
	Repacks repackdb.RepackService
	Crawler *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Path to YAML config file" default:"config/repackdb.yaml"`
	Verbose bool   `short:"v" help:"Log every fetch and upsert"`

	Crawl     CrawlCmd     `cmd:"" help:"Crawl catalog pages into the database"`
	Fetch     FetchCmd     `cmd:"" help:"Fetch a single detail page into the database"`
	List      ListCmd      `cmd:"" help:"List stored repacks, newest first"`
	Search    SearchCmd    `cmd:"" help:"Search repacks by title, genres, or company"`
	Show      ShowCmd      `cmd:"" help:"Show one repack with its magnet links"`
	Stats     StatsCmd     `cmd:"" help:"Show database statistics"`
	Export    ExportCmd    `cmd:"" help:"Export all repacks to a JSON file"`
	Import    ImportCmd    `cmd:"" help:"Import repacks from a JSON file"`
	Blocklist BlocklistCmd `cmd:"" help:"Manage the blocklist pattern file"`
}

// CrawlCmd is the "crawl" subcommand. Flags override the config file.
type CrawlCmd struct {
	StartPage int           `short:"s" help:"First page to crawl (1-based)"`
	MaxPages  int           `short:"n" help:"Page limit, 0 crawls to the end of the catalog" default:"-1"`
	BaseURL   string        `help:"Catalog root URL"`
	Delay     time.Duration `help:"Minimum interval between fetches"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URL string `arg:"" help:"Detail page URL"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit  int `short:"n" default:"20" help:"Maximum rows to print"`
	Offset int `help:"Rows to skip"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Substring to match against title, genres/tags, or company"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Key string `arg:"" help:"Repack URL, ID, or exact title"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Path string `arg:"" help:"Output JSON file"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Path string `arg:"" help:"Input JSON file"`
}

// BlocklistCmd groups the blocklist management subcommands.
type BlocklistCmd struct {
	List   BlocklistListCmd   `cmd:"" default:"1" help:"List blocklist patterns"`
	Add    BlocklistAddCmd    `cmd:"" help:"Add a pattern"`
	Remove BlocklistRemoveCmd `cmd:"" help:"Remove a pattern"`
	Check  BlocklistCheckCmd  `cmd:"" help:"Check whether a URL or title is blocked"`
	Clear  BlocklistClearCmd  `cmd:"" help:"Remove all patterns"`
}

// BlocklistListCmd is the "blocklist list" subcommand.
type BlocklistListCmd struct{}

// BlocklistAddCmd is the "blocklist add" subcommand.
type BlocklistAddCmd struct {
	Pattern string `arg:"" help:"Substring pattern to block"`
}

// BlocklistRemoveCmd is the "blocklist remove" subcommand.
type BlocklistRemoveCmd struct {
	Pattern string `arg:"" help:"Pattern to remove"`
}

// BlocklistCheckCmd is the "blocklist check" subcommand.
type BlocklistCheckCmd struct {
	Text string `arg:"" help:"URL or title to check"`
}

// BlocklistClearCmd is the "blocklist clear" subcommand.
type BlocklistClearCmd struct {
	Force bool `help:"Confirm clearing all patterns"`
}
