// Package mock provides function-field test doubles for repackdb interfaces.
package mock

import (
	"context"

	"github.com/repackdb/repackdb"
)

var _ repackdb.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of repackdb.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ repackdb.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a mock implementation of repackdb.RateLimiter.
type RateLimiter struct {
	WaitFn func(ctx context.Context) error
}

func (l *RateLimiter) Wait(ctx context.Context) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx)
}
