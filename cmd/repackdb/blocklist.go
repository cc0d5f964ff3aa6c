package main

import (
	"fmt"
	"strings"

	"github.com/repackdb/repackdb"
	"github.com/repackdb/repackdb/fs"
)

// Run executes the blocklist list command.
func (c *BlocklistListCmd) Run(deps *Dependencies) error {
	s, err := fs.OpenSession(deps.Config.BlocklistPath)
	if err != nil {
		return err
	}

	patterns := s.Patterns()
	if len(patterns) == 0 {
		fmt.Fprintln(deps.Stdout, "Blocklist is empty.")
		return nil
	}

	for _, p := range patterns {
		fmt.Fprintln(deps.Stdout, p)
	}
	return nil
}

// Run executes the blocklist add command.
func (c *BlocklistAddCmd) Run(deps *Dependencies) error {
	s, err := fs.OpenSession(deps.Config.BlocklistPath)
	if err != nil {
		return err
	}

	if err := s.Add(c.Pattern); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repackdb.ErrorMessage(err))
		return err
	}
	if err := s.Save(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added pattern %q\n", c.Pattern)
	return nil
}

// Run executes the blocklist remove command.
func (c *BlocklistRemoveCmd) Run(deps *Dependencies) error {
	s, err := fs.OpenSession(deps.Config.BlocklistPath)
	if err != nil {
		return err
	}

	if !s.Remove(c.Pattern) {
		fmt.Fprintf(deps.Stdout, "Pattern %q not found.\n", c.Pattern)
		return nil
	}
	if err := s.Save(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Removed pattern %q\n", c.Pattern)
	return nil
}

// Run executes the blocklist check command.
func (c *BlocklistCheckCmd) Run(deps *Dependencies) error {
	bl, err := fs.LoadBlocklist(deps.Config.BlocklistPath)
	if err != nil {
		return err
	}

	var blocked bool
	if strings.HasPrefix(c.Text, "http://") || strings.HasPrefix(c.Text, "https://") {
		blocked = bl.Blocked(c.Text, "")
	} else {
		blocked = bl.Blocked("", c.Text)
	}

	if blocked {
		fmt.Fprintf(deps.Stdout, "%q is blocked\n", c.Text)
	} else {
		fmt.Fprintf(deps.Stdout, "%q is not blocked\n", c.Text)
	}
	return nil
}

// Run executes the blocklist clear command.
func (c *BlocklistClearCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintln(deps.Stdout, "Refusing to clear without --force.")
		return nil
	}

	s, err := fs.OpenSession(deps.Config.BlocklistPath)
	if err != nil {
		return err
	}

	n := s.Clear()
	if err := s.Save(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Cleared %d patterns\n", n)
	return nil
}
