// Package fs provides file-backed supporting stores: the blocklist
// pattern file and JSON export/import of repack records.
package fs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/repackdb/repackdb"
)

// Ensure Blocklist implements repackdb.Blocklist at compile time.
var _ repackdb.Blocklist = (*Blocklist)(nil)

// Blocklist is an immutable snapshot of lowercase substring patterns
// loaded from a line-oriented file. Use a Session to modify the file.
type Blocklist struct {
	patterns []string
}

// LoadBlocklist reads patterns from path. Blank lines and lines starting
// with '#' are skipped; patterns are lowercased. A missing file yields an
// empty blocklist, not an error.
func LoadBlocklist(path string) (*Blocklist, error) {
	patterns, err := readPatterns(path)
	if err != nil {
		return nil, err
	}
	sort.Strings(patterns)
	return &Blocklist{patterns: patterns}, nil
}

// Blocked reports whether any pattern occurs as a substring of the
// lowercased URL or title. Empty inputs never match.
func (b *Blocklist) Blocked(url, title string) bool {
	if len(b.patterns) == 0 {
		return false
	}
	url = strings.ToLower(url)
	title = strings.ToLower(title)
	for _, p := range b.patterns {
		if url != "" && strings.Contains(url, p) {
			return true
		}
		if title != "" && strings.Contains(title, p) {
			return true
		}
	}
	return false
}

// Len returns the number of loaded patterns.
func (b *Blocklist) Len() int {
	return len(b.patterns)
}

// Session edits the blocklist file. Changes are held in memory until Save.
type Session struct {
	path     string
	patterns map[string]struct{}
}

// OpenSession loads the blocklist file at path for editing. A missing
// file opens an empty session.
func OpenSession(path string) (*Session, error) {
	patterns, err := readPatterns(path)
	if err != nil {
		return nil, err
	}
	s := &Session{path: path, patterns: make(map[string]struct{}, len(patterns))}
	for _, p := range patterns {
		s.patterns[p] = struct{}{}
	}
	return s, nil
}

// Add registers a pattern. The pattern is trimmed and lowercased;
// blank or comment-like input is rejected.
func (s *Session) Add(pattern string) error {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" || strings.HasPrefix(pattern, "#") {
		return repackdb.Errorf(repackdb.EINVALID, "invalid blocklist pattern %q", pattern)
	}
	s.patterns[pattern] = struct{}{}
	return nil
}

// Remove deletes a pattern and reports whether it was present.
func (s *Session) Remove(pattern string) bool {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if _, ok := s.patterns[pattern]; !ok {
		return false
	}
	delete(s.patterns, pattern)
	return true
}

// Clear removes every pattern and returns how many were removed.
func (s *Session) Clear() int {
	n := len(s.patterns)
	s.patterns = make(map[string]struct{})
	return n
}

// Patterns returns the current patterns in sorted order.
func (s *Session) Patterns() []string {
	out := make([]string, 0, len(s.patterns))
	for p := range s.patterns {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Save writes the patterns back to the file with a header comment.
func (s *Session) Save() error {
	var b strings.Builder
	b.WriteString("# Blocklist for pages to skip during crawling\n")
	b.WriteString("# Add one URL pattern or title per line\n")
	b.WriteString("# Lines starting with # are comments\n\n")
	for _, p := range s.Patterns() {
		fmt.Fprintln(&b, p)
	}
	return os.WriteFile(s.path, []byte(b.String()), 0644)
}

func readPatterns(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, strings.ToLower(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}
