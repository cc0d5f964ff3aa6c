package repackdb

// Extractor turns raw catalog HTML into repack records.
//
// Extraction never fails on missing sections: a field the page does not
// carry is simply left nil on the returned record. Only unparsable HTML is
// reported as an error.
type Extractor interface {
	// ExtractList extracts every repack entry from a listing page.
	// Entries without a linked title keep an empty URL and are later
	// rejected at the store boundary.
	ExtractList(html string) ([]*Repack, error)

	// ExtractDetail extracts a single repack from a detail page.
	// The record's URL is set to pageURL (the page being crawled is the
	// canonical location). Detail pages additionally yield the repack
	// feature list and plain-text download mirrors.
	// Returns ENOTFOUND if the page contains no entry.
	ExtractDetail(html string, pageURL string) (*Repack, error)
}
