package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/repackdb/repackdb"
)

// Ensure LoggingRepackService implements repackdb.RepackService.
var _ repackdb.RepackService = (*LoggingRepackService)(nil)

// LoggingRepackService wraps a RepackService with logging on the write
// paths. Read paths delegate without logging.
type LoggingRepackService struct {
	next   repackdb.RepackService
	logger *slog.Logger
}

// NewLoggingRepackService creates a new LoggingRepackService.
func NewLoggingRepackService(next repackdb.RepackService, logger *slog.Logger) *LoggingRepackService {
	return &LoggingRepackService{next: next, logger: logger}
}

// UpsertRepack delegates to the wrapped service and logs the outcome.
func (s *LoggingRepackService) UpsertRepack(ctx context.Context, repack *repackdb.Repack) error {
	begin := time.Now()
	err := s.next.UpsertRepack(ctx, repack)
	if err != nil {
		s.logger.Error("upsert repack",
			"url", repack.URL,
			"title", repack.Title,
			"err", err,
		)
		return err
	}
	s.logger.Info("upsert repack",
		"url", repack.URL,
		"title", repack.Title,
		"duration", time.Since(begin),
	)
	return nil
}

// UpsertRepacks delegates to the wrapped service and logs the batch counts.
func (s *LoggingRepackService) UpsertRepacks(ctx context.Context, repacks []*repackdb.Repack) (*repackdb.BatchResult, error) {
	begin := time.Now()
	result, err := s.next.UpsertRepacks(ctx, repacks)
	if err != nil {
		s.logger.Error("upsert batch", "size", len(repacks), "err", err)
		return nil, err
	}
	s.logger.Info("upsert batch",
		"size", len(repacks),
		"saved", result.Saved,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"duration", time.Since(begin),
	)
	return result, nil
}

// FindRepackByID delegates to the wrapped service.
func (s *LoggingRepackService) FindRepackByID(ctx context.Context, id string) (*repackdb.Repack, error) {
	return s.next.FindRepackByID(ctx, id)
}

// FindRepackByURL delegates to the wrapped service.
func (s *LoggingRepackService) FindRepackByURL(ctx context.Context, url string) (*repackdb.Repack, error) {
	return s.next.FindRepackByURL(ctx, url)
}

// FindRepackByTitle delegates to the wrapped service.
func (s *LoggingRepackService) FindRepackByTitle(ctx context.Context, title string) (*repackdb.Repack, error) {
	return s.next.FindRepackByTitle(ctx, title)
}

// FindRepacks delegates to the wrapped service.
func (s *LoggingRepackService) FindRepacks(ctx context.Context, filter repackdb.RepackFilter) ([]*repackdb.Repack, error) {
	return s.next.FindRepacks(ctx, filter)
}

// SearchRepacks delegates to the wrapped service.
func (s *LoggingRepackService) SearchRepacks(ctx context.Context, query string) ([]*repackdb.Repack, error) {
	return s.next.SearchRepacks(ctx, query)
}

// Stats delegates to the wrapped service.
func (s *LoggingRepackService) Stats(ctx context.Context) (*repackdb.Stats, error) {
	return s.next.Stats(ctx)
}

// DeleteRepack delegates to the wrapped service and logs the outcome.
func (s *LoggingRepackService) DeleteRepack(ctx context.Context, id string) error {
	err := s.next.DeleteRepack(ctx, id)
	if err != nil {
		s.logger.Error("delete repack", "id", id, "err", err)
		return err
	}
	s.logger.Info("delete repack", "id", id)
	return nil
}
