package main

import (
	"fmt"

	"github.com/repackdb/repackdb"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	r, err := deps.Crawler.CrawlDetail(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repackdb.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %q (%d magnet links)\n", r.Title, len(r.Magnets))
	return nil
}
