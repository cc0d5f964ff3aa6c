package mock

import "github.com/repackdb/repackdb"

var _ repackdb.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of repackdb.Extractor.
type Extractor struct {
	ExtractListFn   func(html string) ([]*repackdb.Repack, error)
	ExtractDetailFn func(html string, pageURL string) (*repackdb.Repack, error)
}

func (e *Extractor) ExtractList(html string) ([]*repackdb.Repack, error) {
	return e.ExtractListFn(html)
}

func (e *Extractor) ExtractDetail(html string, pageURL string) (*repackdb.Repack, error) {
	return e.ExtractDetailFn(html, pageURL)
}

var _ repackdb.Blocklist = (*Blocklist)(nil)

// Blocklist is a mock implementation of repackdb.Blocklist.
type Blocklist struct {
	BlockedFn func(url, title string) bool
}

func (b *Blocklist) Blocked(url, title string) bool {
	if b.BlockedFn == nil {
		return false
	}
	return b.BlockedFn(url, title)
}
