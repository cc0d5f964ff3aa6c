package main

import (
	"fmt"

	"github.com/repackdb/repackdb"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	repacks, err := deps.Repacks.FindRepacks(deps.Ctx, repackdb.RepackFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repackdb.ErrorMessage(err))
		return err
	}

	if len(repacks) == 0 {
		fmt.Fprintln(deps.Stdout, "No repacks stored. Use 'repackdb crawl' to populate the database.")
		return nil
	}

	for _, r := range repacks {
		printRepackLine(deps, r)
	}

	return nil
}

// printRepackLine prints the one-line listing format shared by list and search.
func printRepackLine(deps *Dependencies, r *repackdb.Repack) {
	date := repackdb.StringValue(r.Date)
	if date == "" {
		date = "          "
	}
	fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", date, r.Title, r.URL)
}
