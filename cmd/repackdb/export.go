package main

import (
	"fmt"

	"github.com/repackdb/repackdb"
	"github.com/repackdb/repackdb/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	repacks, err := deps.Repacks.FindRepacks(deps.Ctx, repackdb.RepackFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repackdb.ErrorMessage(err))
		return err
	}

	if err := fs.WriteRepacks(c.Path, repacks); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repackdb.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d repacks to %s\n", len(repacks), c.Path)
	return nil
}
