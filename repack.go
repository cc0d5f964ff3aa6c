package repackdb

import (
	"context"
	"strings"
	"time"
)

// MagnetScheme is the URI scheme a locator link must carry to be collected.
// Anchors with any other scheme are ignored at extraction time.
const MagnetScheme = "magnet:"

// Repack represents one catalog entry, keyed by its canonical post URL.
//
// Optional fields are pointers so that "not captured on this crawl" is
// distinguishable from "captured as empty"; absent fields map to NULL
// columns and are subject to the store's merge rules.
type Repack struct {
	ID  string `json:"id"`
	URL string `json:"url"`

	Title        string  `json:"title"`
	GenresTags   *string `json:"genresTags"`
	Company      *string `json:"company"`
	Languages    *string `json:"languages"`
	OriginalSize *string `json:"originalSize"`
	RepackSize   *string `json:"repackSize"`
	Date         *string `json:"date"`
	Description  *string `json:"description"`

	// Features and Mirrors are only populated by detail-page crawls.
	Features []string `json:"features,omitempty"`
	Mirrors  []string `json:"mirrors,omitempty"`

	Magnets []Magnet `json:"magnets"`

	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the repack cannot be persisted.
// A repack without a URL has no natural key to reconcile against future
// crawls (placeholder listings such as "Upcoming Repacks"), so the store
// rejects it with EINVALID and batch callers count it as a skip.
func (r *Repack) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "repack %q has no URL", r.Title)
	}
	if r.Title == "" {
		return Errorf(EINVALID, "repack %q has no title", r.URL)
	}
	return nil
}

// Magnet represents one named download pointer owned by a repack.
// Source is the dedup key within an item: re-crawling the same post with a
// changed URI for the same source updates the row in place.
type Magnet struct {
	Source string `json:"source"`
	URI    string `json:"uri"`
}

// BatchResult reports the outcome of a batch upsert.
type BatchResult struct {
	Saved   int // records inserted or updated
	Skipped int // records without a URL
	Failed  int // records rejected by the storage layer
}

// Stats holds aggregate counts over the stored catalog.
type Stats struct {
	Repacks   int `json:"repacks"`
	Magnets   int `json:"magnets"`
	Companies int `json:"companies"`
}

// RepackFilter represents a filter for FindRepacks.
// Results are ordered by date descending.
type RepackFilter struct {
	URL   *string `json:"url"`
	Title *string `json:"title"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RepackService represents a service for managing repacks.
type RepackService interface {
	// UpsertRepack inserts or updates a repack keyed by its URL.
	// On conflict every mutable attribute is overwritten while the stored
	// identity is preserved; magnets are deduplicated by (repack, source).
	// Returns EINVALID if the repack has no URL.
	UpsertRepack(ctx context.Context, repack *Repack) error

	// UpsertRepacks upserts a batch of repacks. Records are processed
	// independently: one record's rejection never aborts the batch.
	UpsertRepacks(ctx context.Context, repacks []*Repack) (*BatchResult, error)

	// FindRepackByID retrieves a repack by ID.
	// Returns ENOTFOUND if the repack does not exist.
	FindRepackByID(ctx context.Context, id string) (*Repack, error)

	// FindRepackByURL retrieves a repack by its canonical URL.
	// Returns ENOTFOUND if the repack does not exist.
	FindRepackByURL(ctx context.Context, url string) (*Repack, error)

	// FindRepackByTitle retrieves the most recent repack with the given
	// title. Returns ENOTFOUND if no repack matches.
	FindRepackByTitle(ctx context.Context, title string) (*Repack, error)

	// FindRepacks retrieves repacks matching the filter, newest first.
	FindRepacks(ctx context.Context, filter RepackFilter) ([]*Repack, error)

	// SearchRepacks finds repacks whose title, genres/tags, or company
	// contain the query as a substring, newest first.
	SearchRepacks(ctx context.Context, query string) ([]*Repack, error)

	// Stats returns aggregate counts over the stored catalog.
	Stats(ctx context.Context) (*Stats, error)

	// DeleteRepack permanently removes a repack and its magnet links.
	// Returns ENOTFOUND if the repack does not exist.
	DeleteRepack(ctx context.Context, id string) error
}

// String returns a pointer to s, or nil if s is empty after trimming.
// Extraction code uses it to map empty captures to absent fields.
func String(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences p, returning "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
