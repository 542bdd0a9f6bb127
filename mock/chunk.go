package mock

import (
	"context"

	"github.com/asjoberg/confrag"
)

var _ confrag.ChunkService = (*ChunkService)(nil)

// ChunkService is a mock implementation of confrag.ChunkService.
type ChunkService struct {
	CreateChunksFn  func(ctx context.Context, chunks []*confrag.Chunk) error
	SearchFn        func(ctx context.Context, query string, opts confrag.SearchOptions) ([]confrag.SearchResult, error)
	CountFn         func(ctx context.Context) (int, error)
	DeleteBySpaceFn func(ctx context.Context, spaceKey string) error
}

func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*confrag.Chunk) error {
	return s.CreateChunksFn(ctx, chunks)
}

func (s *ChunkService) Search(ctx context.Context, query string, opts confrag.SearchOptions) ([]confrag.SearchResult, error) {
	return s.SearchFn(ctx, query, opts)
}

func (s *ChunkService) Count(ctx context.Context) (int, error) {
	return s.CountFn(ctx)
}

func (s *ChunkService) DeleteBySpace(ctx context.Context, spaceKey string) error {
	return s.DeleteBySpaceFn(ctx, spaceKey)
}
