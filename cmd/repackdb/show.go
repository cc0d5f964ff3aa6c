package main

import (
	"fmt"
	"strings"

	"github.com/repackdb/repackdb"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	r, err := c.resolve(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repackdb.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s\n%s\n\n", r.Title, r.URL)
	printField(deps, "Genres/Tags", r.GenresTags)
	printField(deps, "Company", r.Company)
	printField(deps, "Languages", r.Languages)
	printField(deps, "Original Size", r.OriginalSize)
	printField(deps, "Repack Size", r.RepackSize)
	printField(deps, "Date", r.Date)

	if len(r.Magnets) > 0 {
		fmt.Fprintln(deps.Stdout, "\nMagnet links:")
		for _, m := range r.Magnets {
			fmt.Fprintf(deps.Stdout, "  %s  %s\n", m.Source, m.URI)
		}
	}

	if len(r.Mirrors) > 0 {
		fmt.Fprintln(deps.Stdout, "\nMirrors:")
		for _, m := range r.Mirrors {
			fmt.Fprintf(deps.Stdout, "  %s\n", m)
		}
	}

	if desc := repackdb.StringValue(r.Description); desc != "" {
		fmt.Fprintf(deps.Stdout, "\n%s\n", desc)
	}

	return nil
}

// resolve looks the key up as a URL, then an ID, then an exact title.
func (c *ShowCmd) resolve(deps *Dependencies) (*repackdb.Repack, error) {
	if strings.HasPrefix(c.Key, "http://") || strings.HasPrefix(c.Key, "https://") {
		return deps.Repacks.FindRepackByURL(deps.Ctx, c.Key)
	}

	r, err := deps.Repacks.FindRepackByID(deps.Ctx, c.Key)
	if err == nil {
		return r, nil
	}
	if repackdb.ErrorCode(err) != repackdb.ENOTFOUND {
		return nil, err
	}

	return deps.Repacks.FindRepackByTitle(deps.Ctx, c.Key)
}

func printField(deps *Dependencies, label string, value *string) {
	if v := repackdb.StringValue(value); v != "" {
		fmt.Fprintf(deps.Stdout, "%-14s %s\n", label+":", v)
	}
}
