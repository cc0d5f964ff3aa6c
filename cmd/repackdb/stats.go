package main

import (
	"fmt"

	"github.com/repackdb/repackdb"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Repacks.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repackdb.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Repacks:   %d\n", stats.Repacks)
	fmt.Fprintf(deps.Stdout, "Magnets:   %d\n", stats.Magnets)
	fmt.Fprintf(deps.Stdout, "Companies: %d\n", stats.Companies)

	return nil
}
