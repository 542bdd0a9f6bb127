// Package mock provides hand-written mocks of the confrag interfaces
// for use in tests.
package mock

import (
	"context"

	"github.com/asjoberg/confrag"
)

var _ confrag.ContentService = (*ContentService)(nil)

// ContentService is a mock implementation of confrag.ContentService.
type ContentService struct {
	SpaceFn     func(ctx context.Context, key string) (*confrag.Space, error)
	ListPagesFn func(ctx context.Context, key string) ([]confrag.PageSummary, error)
	FetchPageFn func(ctx context.Context, id string) (*confrag.Page, error)
}

func (s *ContentService) Space(ctx context.Context, key string) (*confrag.Space, error) {
	return s.SpaceFn(ctx, key)
}

func (s *ContentService) ListPages(ctx context.Context, key string) ([]confrag.PageSummary, error) {
	return s.ListPagesFn(ctx, key)
}

func (s *ContentService) FetchPage(ctx context.Context, id string) (*confrag.Page, error) {
	return s.FetchPageFn(ctx, id)
}
