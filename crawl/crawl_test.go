package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/repackdb/repackdb"
	"github.com/repackdb/repackdb/crawl"
	"github.com/repackdb/repackdb/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pageFetcher serves canned HTML keyed by URL; unknown URLs fail.
func pageFetcher(pages map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			html, ok := pages[url]
			if !ok {
				return "", repackdb.Errorf(repackdb.EUNAVAILABLE, "no such page %s", url)
			}
			return html, nil
		},
	}
}

// listExtractor maps page HTML to canned records.
func listExtractor(items map[string][]*repackdb.Repack) *mock.Extractor {
	return &mock.Extractor{
		ExtractListFn: func(html string) ([]*repackdb.Repack, error) {
			return items[html], nil
		},
	}
}

// recordingStore accumulates upserted records and applies the real
// skip-on-missing-URL batch semantics.
type recordingStore struct {
	mock.RepackService
	upserted []*repackdb.Repack
}

func newRecordingStore() *recordingStore {
	s := &recordingStore{}
	s.UpsertRepacksFn = func(_ context.Context, repacks []*repackdb.Repack) (*repackdb.BatchResult, error) {
		result := &repackdb.BatchResult{}
		for _, r := range repacks {
			if r.URL == "" {
				result.Skipped++
				continue
			}
			s.upserted = append(s.upserted, r)
			result.Saved++
		}
		return result, nil
	}
	s.UpsertRepackFn = func(_ context.Context, r *repackdb.Repack) error {
		if err := r.Validate(); err != nil {
			return err
		}
		s.upserted = append(s.upserted, r)
		return nil
	}
	return s
}

func testConfig() repackdb.Config {
	cfg := repackdb.DefaultConfig()
	cfg.BaseURL = "https://example.com"
	cfg.MaxPages = 0
	return cfg
}

func TestPageURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://example.com", crawl.PageURL("https://example.com/", 1))
	assert.Equal(t, "https://example.com/page/2/", crawl.PageURL("https://example.com", 2))
	assert.Equal(t, "https://example.com/page/7/", crawl.PageURL("https://example.com/", 7))
}

func TestCrawler_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("stops cleanly at end of catalog", func(t *testing.T) {
		t.Parallel()

		store := newRecordingStore()
		c := &crawl.Crawler{
			Fetcher: pageFetcher(map[string]string{
				"https://example.com":         "page1",
				"https://example.com/page/2/": "page2",
			}),
			Extractor: listExtractor(map[string][]*repackdb.Repack{
				"page1": {
					{URL: "https://example.com/game-1/", Title: "Game 1"},
					{URL: "https://example.com/game-2/", Title: "Game 2"},
				},
				"page2": nil,
			}),
			Repacks:     store,
			RetryDelays: []time.Duration{},
		}

		result, err := c.Crawl(context.Background(), testConfig(), nil)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Pages)
		assert.Equal(t, 2, result.Found)
		assert.Equal(t, 2, result.Saved)
		assert.Len(t, store.upserted, 2)
	})

	t.Run("respects the max pages bound", func(t *testing.T) {
		t.Parallel()

		store := newRecordingStore()
		pages := map[string]string{
			"https://example.com":         "page",
			"https://example.com/page/2/": "page",
			"https://example.com/page/3/": "page",
		}
		var n int
		c := &crawl.Crawler{
			Fetcher: pageFetcher(pages),
			Extractor: &mock.Extractor{
				ExtractListFn: func(string) ([]*repackdb.Repack, error) {
					n++
					return []*repackdb.Repack{{
						URL:   crawl.PageURL("https://example.com/item", n),
						Title: "Game",
					}}, nil
				},
			},
			Repacks:     store,
			RetryDelays: []time.Duration{},
		}

		cfg := testConfig()
		cfg.MaxPages = 2
		result, err := c.Crawl(context.Background(), cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Pages)
	})

	t.Run("blocklisted entries are excluded and counted", func(t *testing.T) {
		t.Parallel()

		store := newRecordingStore()
		var events []crawl.ProgressEvent
		c := &crawl.Crawler{
			Fetcher: pageFetcher(map[string]string{
				"https://example.com":         "page1",
				"https://example.com/page/2/": "empty",
			}),
			Extractor: listExtractor(map[string][]*repackdb.Repack{
				"page1": {
					{URL: "https://example.com/good-game/", Title: "Good Game"},
					{URL: "https://example.com/bad-game/", Title: "Bad Game"},
				},
			}),
			Blocklist: &mock.Blocklist{
				BlockedFn: func(_, title string) bool { return title == "Bad Game" },
			},
			Repacks:     store,
			RetryDelays: []time.Duration{},
		}

		result, err := c.Crawl(context.Background(), testConfig(), func(e crawl.ProgressEvent) {
			events = append(events, e)
		})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Blocked)
		assert.Equal(t, 1, result.Saved)
		require.Len(t, store.upserted, 1)
		assert.Equal(t, "Good Game", store.upserted[0].Title)

		var blocked int
		for _, e := range events {
			if e.Type == crawl.ProgressItemBlocked {
				blocked++
			}
		}
		assert.Equal(t, 1, blocked)
	})

	t.Run("URL-less records reach the store and count as skips", func(t *testing.T) {
		t.Parallel()

		store := newRecordingStore()
		c := &crawl.Crawler{
			Fetcher: pageFetcher(map[string]string{
				"https://example.com":         "page1",
				"https://example.com/page/2/": "empty",
			}),
			Extractor: listExtractor(map[string][]*repackdb.Repack{
				"page1": {
					{URL: "https://example.com/game-1/", Title: "Game 1"},
					{Title: "Upcoming Repacks"},
				},
			}),
			Repacks:     store,
			RetryDelays: []time.Duration{},
		}

		result, err := c.Crawl(context.Background(), testConfig(), nil)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 1, result.Skipped)
	})

	t.Run("sticky posts repeating across pages are upserted once", func(t *testing.T) {
		t.Parallel()

		store := newRecordingStore()
		sticky := "https://example.com/sticky-game/"
		c := &crawl.Crawler{
			Fetcher: pageFetcher(map[string]string{
				"https://example.com":         "page1",
				"https://example.com/page/2/": "page2",
				"https://example.com/page/3/": "empty",
			}),
			Extractor: listExtractor(map[string][]*repackdb.Repack{
				"page1": {
					{URL: sticky, Title: "Sticky Game"},
					{URL: "https://example.com/game-1/", Title: "Game 1"},
				},
				"page2": {
					{URL: sticky, Title: "Sticky Game"},
					{URL: "https://example.com/game-2/", Title: "Game 2"},
				},
			}),
			Repacks:     store,
			RetryDelays: []time.Duration{},
		}

		result, err := c.Crawl(context.Background(), testConfig(), nil)
		require.NoError(t, err)
		assert.Equal(t, 3, result.Saved)
		assert.Len(t, store.upserted, 3)
	})

	t.Run("single failed page is treated as empty and traversal continues", func(t *testing.T) {
		t.Parallel()

		store := newRecordingStore()
		c := &crawl.Crawler{
			Fetcher: pageFetcher(map[string]string{
				"https://example.com": "page1",
				// page 2 missing: transport failure
				"https://example.com/page/3/": "empty",
			}),
			Extractor: listExtractor(map[string][]*repackdb.Repack{
				"page1": {{URL: "https://example.com/game-1/", Title: "Game 1"}},
			}),
			Repacks:     store,
			RetryDelays: []time.Duration{},
		}

		result, err := c.Crawl(context.Background(), testConfig(), nil)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
	})

	t.Run("aborts with EUNAVAILABLE after consecutive failed pages", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return "", repackdb.Errorf(repackdb.EUNAVAILABLE, "connection refused")
				},
			},
			Extractor:   listExtractor(nil),
			Repacks:     newRecordingStore(),
			RetryDelays: []time.Duration{},
		}

		_, err := c.Crawl(context.Background(), testConfig(), nil)
		require.Error(t, err)
		assert.Equal(t, repackdb.EUNAVAILABLE, repackdb.ErrorCode(err))
	})

	t.Run("rejects invalid configuration", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{}
		cfg := testConfig()
		cfg.StartPage = 0

		_, err := c.Crawl(context.Background(), cfg, nil)
		require.Error(t, err)
		assert.Equal(t, repackdb.EINVALID, repackdb.ErrorCode(err))
	})

	t.Run("waits on the rate limiter before every fetch", func(t *testing.T) {
		t.Parallel()

		store := newRecordingStore()
		var waits, fetches int
		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					fetches++
					return "empty", nil
				},
			},
			Extractor:   listExtractor(nil),
			Repacks:     store,
			Limiter:     &mock.RateLimiter{WaitFn: func(context.Context) error { waits++; return nil }},
			RetryDelays: []time.Duration{},
		}

		_, err := c.Crawl(context.Background(), testConfig(), nil)
		require.NoError(t, err)
		assert.Equal(t, fetches, waits)
		assert.Equal(t, 1, fetches)
	})
}

func TestCrawler_CrawlDetail(t *testing.T) {
	t.Parallel()

	t.Run("fetches, extracts, and upserts one record", func(t *testing.T) {
		t.Parallel()

		store := newRecordingStore()
		c := &crawl.Crawler{
			Fetcher: pageFetcher(map[string]string{
				"https://example.com/some-game/": "detail",
			}),
			Extractor: &mock.Extractor{
				ExtractDetailFn: func(_ string, pageURL string) (*repackdb.Repack, error) {
					return &repackdb.Repack{URL: pageURL, Title: "Some Game"}, nil
				},
			},
			Repacks:     store,
			RetryDelays: []time.Duration{},
		}

		r, err := c.CrawlDetail(context.Background(), "https://example.com/some-game/")
		require.NoError(t, err)
		assert.Equal(t, "Some Game", r.Title)
		assert.Len(t, store.upserted, 1)
	})

	t.Run("returns EINVALID for blocklisted pages", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Fetcher: pageFetcher(map[string]string{
				"https://example.com/bad-game/": "detail",
			}),
			Extractor: &mock.Extractor{
				ExtractDetailFn: func(_ string, pageURL string) (*repackdb.Repack, error) {
					return &repackdb.Repack{URL: pageURL, Title: "Bad Game"}, nil
				},
			},
			Blocklist:   &mock.Blocklist{BlockedFn: func(url, _ string) bool { return url == "https://example.com/bad-game/" }},
			Repacks:     newRecordingStore(),
			RetryDelays: []time.Duration{},
		}

		_, err := c.CrawlDetail(context.Background(), "https://example.com/bad-game/")
		require.Error(t, err)
		assert.Equal(t, repackdb.EINVALID, repackdb.ErrorCode(err))
	})
}
