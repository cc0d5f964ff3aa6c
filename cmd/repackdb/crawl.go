package main

import (
	"fmt"

	"github.com/repackdb/repackdb"
	"github.com/repackdb/repackdb/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	cfg := deps.Config
	if c.StartPage > 0 {
		cfg.StartPage = c.StartPage
	}
	if c.MaxPages >= 0 {
		cfg.MaxPages = c.MaxPages
	}
	if c.BaseURL != "" {
		cfg.BaseURL = c.BaseURL
	}
	if c.Delay > 0 {
		cfg.Delay = c.Delay
		deps.Crawler.Limiter = crawl.NewLimiter(c.Delay)
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressPageStarted:
			fmt.Fprintf(deps.Stdout, "page %d: %s\n", event.Page, event.URL)
		case crawl.ProgressPageFailed:
			fmt.Fprintf(deps.Stderr, "  page %d failed: %v\n", event.Page, event.Error)
		case crawl.ProgressItemBlocked:
			fmt.Fprintf(deps.Stdout, "  blocked %q\n", event.Title)
		}
	}

	result, err := deps.Crawler.Crawl(deps.Ctx, cfg, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repackdb.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Crawled %d pages: %d found, %d saved, %d skipped, %d blocked, %d failed\n",
		result.Pages, result.Found, result.Saved, result.Skipped, result.Blocked, result.Failed)

	return nil
}
