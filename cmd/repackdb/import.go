package main

import (
	"fmt"

	"github.com/repackdb/repackdb"
	"github.com/repackdb/repackdb/fs"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	repacks, err := fs.ReadRepacks(c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repackdb.ErrorMessage(err))
		return err
	}

	result, err := deps.Repacks.UpsertRepacks(deps.Ctx, repacks)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repackdb.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d repacks (%d skipped, %d failed)\n",
		result.Saved, result.Skipped, result.Failed)
	return nil
}
