package mock

import (
	"context"

	"github.com/repackdb/repackdb"
)

var _ repackdb.RepackService = (*RepackService)(nil)

// RepackService is a mock implementation of repackdb.RepackService.
type RepackService struct {
	UpsertRepackFn      func(ctx context.Context, repack *repackdb.Repack) error
	UpsertRepacksFn     func(ctx context.Context, repacks []*repackdb.Repack) (*repackdb.BatchResult, error)
	FindRepackByIDFn    func(ctx context.Context, id string) (*repackdb.Repack, error)
	FindRepackByURLFn   func(ctx context.Context, url string) (*repackdb.Repack, error)
	FindRepackByTitleFn func(ctx context.Context, title string) (*repackdb.Repack, error)
	FindRepacksFn       func(ctx context.Context, filter repackdb.RepackFilter) ([]*repackdb.Repack, error)
	SearchRepacksFn     func(ctx context.Context, query string) ([]*repackdb.Repack, error)
	StatsFn             func(ctx context.Context) (*repackdb.Stats, error)
	DeleteRepackFn      func(ctx context.Context, id string) error
}

func (s *RepackService) UpsertRepack(ctx context.Context, repack *repackdb.Repack) error {
	return s.UpsertRepackFn(ctx, repack)
}

func (s *RepackService) UpsertRepacks(ctx context.Context, repacks []*repackdb.Repack) (*repackdb.BatchResult, error) {
	return s.UpsertRepacksFn(ctx, repacks)
}

func (s *RepackService) FindRepackByID(ctx context.Context, id string) (*repackdb.Repack, error) {
	return s.FindRepackByIDFn(ctx, id)
}

func (s *RepackService) FindRepackByURL(ctx context.Context, url string) (*repackdb.Repack, error) {
	return s.FindRepackByURLFn(ctx, url)
}

func (s *RepackService) FindRepackByTitle(ctx context.Context, title string) (*repackdb.Repack, error) {
	return s.FindRepackByTitleFn(ctx, title)
}

func (s *RepackService) FindRepacks(ctx context.Context, filter repackdb.RepackFilter) ([]*repackdb.Repack, error) {
	return s.FindRepacksFn(ctx, filter)
}

func (s *RepackService) SearchRepacks(ctx context.Context, query string) ([]*repackdb.Repack, error) {
	return s.SearchRepacksFn(ctx, query)
}

func (s *RepackService) Stats(ctx context.Context) (*repackdb.Stats, error) {
	return s.StatsFn(ctx)
}

func (s *RepackService) DeleteRepack(ctx context.Context, id string) error {
	return s.DeleteRepackFn(ctx, id)
}
