package main

import (
	"fmt"

	"github.com/repackdb/repackdb"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	repacks, err := deps.Repacks.SearchRepacks(deps.Ctx, c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repackdb.ErrorMessage(err))
		return err
	}

	if len(repacks) == 0 {
		fmt.Fprintf(deps.Stdout, "No repacks match %q.\n", c.Query)
		return nil
	}

	for _, r := range repacks {
		printRepackLine(deps, r)
	}

	return nil
}
