package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/asjoberg/confrag"
)

// Ensure LoggingChunkService implements confrag.ChunkService.
var _ confrag.ChunkService = (*LoggingChunkService)(nil)

// LoggingChunkService wraps a ChunkService with operation logging.
type LoggingChunkService struct {
	next   confrag.ChunkService
	logger *slog.Logger
}

// NewLoggingChunkService creates a new LoggingChunkService.
func NewLoggingChunkService(next confrag.ChunkService, logger *slog.Logger) *LoggingChunkService {
	return &LoggingChunkService{next: next, logger: logger}
}

// CreateChunks delegates to the wrapped service and logs the operation.
func (s *LoggingChunkService) CreateChunks(ctx context.Context, chunks []*confrag.Chunk) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("chunk batch stored",
			"count", len(chunks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateChunks(ctx, chunks)
}

// Search delegates to the wrapped service and logs the operation.
func (s *LoggingChunkService) Search(ctx context.Context, query string, opts confrag.SearchOptions) (results []confrag.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("similarity search",
			"limit", opts.Limit,
			"space", opts.SpaceKey,
			"results", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, opts)
}

// Count delegates to the wrapped service.
func (s *LoggingChunkService) Count(ctx context.Context) (int, error) {
	return s.next.Count(ctx)
}

// DeleteBySpace delegates to the wrapped service and logs the operation.
func (s *LoggingChunkService) DeleteBySpace(ctx context.Context, spaceKey string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("chunks deleted",
			"space", spaceKey,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteBySpace(ctx, spaceKey)
}
