package repackdb

import "context"

// Fetcher retrieves raw HTML from URLs.
// The catalog site is fully static, so implementations do not need to
// execute JavaScript.
type Fetcher interface {
	// Fetch retrieves the HTML content from the given URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// RateLimiter bounds the request rate against the remote site.
// The crawler waits on it before every fetch, regardless of outcome.
type RateLimiter interface {
	// Wait blocks until the rate limit allows the next request.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context) error
}
