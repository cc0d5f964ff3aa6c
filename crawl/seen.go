package crawl

import "github.com/bits-and-blooms/bloom/v3"

const (
	// seenExpectedURLs sizes the filter for a full-catalog crawl.
	seenExpectedURLs = 100000
	// seenFalsePositiveRate keeps accidental drops negligible. A false
	// positive only skips re-upserting a record the store almost
	// certainly already holds from an earlier page of the same run.
	seenFalsePositiveRate = 0.001
)

// seenFilter tracks item URLs already accepted during one run. Sticky
// posts repeat across consecutive listing pages; skipping them avoids
// redundant upserts. The store stays idempotent regardless.
type seenFilter struct {
	f *bloom.BloomFilter
}

func newSeenFilter() *seenFilter {
	return &seenFilter{f: bloom.NewWithEstimates(seenExpectedURLs, seenFalsePositiveRate)}
}

// add records a URL as seen.
func (s *seenFilter) add(url string) {
	s.f.AddString(url)
}

// seen returns true if the URL was probably already accepted this run.
func (s *seenFilter) seen(url string) bool {
	return s.f.TestString(url)
}
