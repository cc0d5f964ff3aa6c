// Package crawl provides the catalog crawling orchestration.
// It drives page-by-page traversal, applies the blocklist gate, and
// persists each page's records through the reconciling store.
package crawl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/repackdb/repackdb"
)

// DefaultMaxConsecutiveFailures is the number of consecutive failed pages
// (retries exhausted each time) after which a run is aborted rather than
// treating every page as empty.
const DefaultMaxConsecutiveFailures = 3

// Crawler orchestrates the crawling of the repack catalog.
// All traversal is sequential: the rate limiter's minimum inter-fetch
// interval is the only concurrency-relevant control.
type Crawler struct {
	Fetcher   repackdb.Fetcher
	Extractor repackdb.Extractor
	Blocklist repackdb.Blocklist
	Repacks   repackdb.RepackService
	Limiter   repackdb.RateLimiter

	// RetryDelays overrides the fetch backoff schedule. Nil means
	// DefaultRetryDelays.
	RetryDelays []time.Duration

	// MaxConsecutiveFailures overrides the abort threshold. Zero means
	// DefaultMaxConsecutiveFailures.
	MaxConsecutiveFailures int
}

// Result holds the outcome of a crawl run.
type Result struct {
	Pages   int // pages that yielded at least one entry
	Found   int // entries extracted before filtering
	Blocked int // entries excluded by the blocklist
	Saved   int // records inserted or updated
	Skipped int // records without a URL
	Failed  int // records rejected by the storage layer
}

// ProgressEvent reports progress during a crawl run.
type ProgressEvent struct {
	Type  ProgressType
	Page  int
	URL   string
	Title string
	Error error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressPageStarted ProgressType = iota
	ProgressPageFailed
	ProgressItemFound
	ProgressItemBlocked
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// PageURL returns the listing URL for a 1-based page number.
// Page 1 is the catalog root; later pages live under /page/N/.
func PageURL(baseURL string, page int) string {
	base := strings.TrimRight(baseURL, "/")
	if page <= 1 {
		return base
	}
	return fmt.Sprintf("%s/page/%d/", base, page)
}

// Crawl traverses listing pages starting at cfg.StartPage until the page
// bound is reached or a page yields zero extractable entries (end of
// catalog, a clean stop). Each page's accepted records are upserted as one
// batch after that page is fully extracted, so an interrupt between pages
// never leaves partial-page state behind.
func (c *Crawler) Crawl(ctx context.Context, cfg repackdb.Config, progress ProgressFunc) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	maxFailures := c.MaxConsecutiveFailures
	if maxFailures <= 0 {
		maxFailures = DefaultMaxConsecutiveFailures
	}

	result := &Result{}
	seen := newSeenFilter()
	consecutiveFailures := 0

	for page := cfg.StartPage; ; page++ {
		if cfg.MaxPages > 0 && page >= cfg.StartPage+cfg.MaxPages {
			break
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		pageURL := PageURL(cfg.BaseURL, page)
		emit(progress, ProgressEvent{Type: ProgressPageStarted, Page: page, URL: pageURL})

		html, err := c.fetchPage(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			consecutiveFailures++
			emit(progress, ProgressEvent{Type: ProgressPageFailed, Page: page, URL: pageURL, Error: err})
			if consecutiveFailures >= maxFailures {
				return result, repackdb.Errorf(repackdb.EUNAVAILABLE,
					"aborting after %d consecutive failed pages: %s", consecutiveFailures, err)
			}
			// A lone failed page counts as empty and the run moves on.
			continue
		}
		consecutiveFailures = 0

		repacks, err := c.Extractor.ExtractList(html)
		if err != nil {
			return result, err
		}
		if len(repacks) == 0 {
			// End of catalog, not an error.
			break
		}
		result.Pages++

		accepted := make([]*repackdb.Repack, 0, len(repacks))
		for _, r := range repacks {
			result.Found++

			if c.Blocklist != nil && c.Blocklist.Blocked(r.URL, r.Title) {
				result.Blocked++
				emit(progress, ProgressEvent{Type: ProgressItemBlocked, Page: page, URL: r.URL, Title: r.Title})
				continue
			}
			if r.URL != "" {
				if seen.seen(r.URL) {
					continue
				}
				seen.add(r.URL)
			}

			accepted = append(accepted, r)
			emit(progress, ProgressEvent{Type: ProgressItemFound, Page: page, URL: r.URL, Title: r.Title})
		}

		batch, err := c.Repacks.UpsertRepacks(ctx, accepted)
		if err != nil {
			return result, err
		}
		result.Saved += batch.Saved
		result.Skipped += batch.Skipped
		result.Failed += batch.Failed
	}

	emit(progress, ProgressEvent{Type: ProgressFinished})
	return result, nil
}

// CrawlDetail crawls a single detail page and upserts the resulting
// record. Returns EINVALID when the page is excluded by the blocklist.
func (c *Crawler) CrawlDetail(ctx context.Context, url string) (*repackdb.Repack, error) {
	html, err := c.fetchPage(ctx, url)
	if err != nil {
		return nil, err
	}

	r, err := c.Extractor.ExtractDetail(html, url)
	if err != nil {
		return nil, err
	}

	if c.Blocklist != nil && c.Blocklist.Blocked(r.URL, r.Title) {
		return nil, repackdb.Errorf(repackdb.EINVALID, "%q is blocklisted", r.Title)
	}

	if err := c.Repacks.UpsertRepack(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

// fetchPage waits on the rate limiter and fetches with retry. The limiter
// wait happens before every fetch, regardless of the previous outcome.
func (c *Crawler) fetchPage(ctx context.Context, url string) (string, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return fetchWithRetry(ctx, url, c.Fetcher.Fetch, delays)
}

func emit(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
