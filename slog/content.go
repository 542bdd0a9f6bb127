// Package slog provides logging decorators for confrag services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/asjoberg/confrag"
)

// Ensure LoggingContentService implements confrag.ContentService.
var _ confrag.ContentService = (*LoggingContentService)(nil)

// LoggingContentService wraps a ContentService with operation logging.
type LoggingContentService struct {
	next   confrag.ContentService
	logger *slog.Logger
}

// NewLoggingContentService creates a new LoggingContentService.
func NewLoggingContentService(next confrag.ContentService, logger *slog.Logger) *LoggingContentService {
	return &LoggingContentService{next: next, logger: logger}
}

// Space delegates to the wrapped service and logs the operation.
func (s *LoggingContentService) Space(ctx context.Context, key string) (space *confrag.Space, err error) {
	defer func(begin time.Time) {
		s.logger.Info("space fetch",
			"space", key,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Space(ctx, key)
}

// ListPages delegates to the wrapped service and logs the operation.
func (s *LoggingContentService) ListPages(ctx context.Context, key string) (items []confrag.PageSummary, err error) {
	defer func(begin time.Time) {
		s.logger.Info("page listing",
			"space", key,
			"count", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListPages(ctx, key)
}

// FetchPage delegates to the wrapped service and logs the operation.
func (s *LoggingContentService) FetchPage(ctx context.Context, id string) (page *confrag.Page, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("page fetch",
			"page_id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchPage(ctx, id)
}
