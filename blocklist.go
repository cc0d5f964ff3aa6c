package repackdb

// Blocklist decides whether a candidate record should be excluded before
// persistence. Implementations are pure predicates: loading and mutation
// happen elsewhere, a loaded blocklist is an immutable snapshot for the
// duration of one run.
type Blocklist interface {
	// Blocked reports whether the URL or title matches any pattern.
	// Patterns are case-insensitive substrings of either field; an empty
	// URL or title is simply not matched against.
	Blocked(url, title string) bool
}
