package mock

import (
	"context"

	"github.com/asjoberg/confrag"
)

var _ confrag.ExportStore = (*ExportStore)(nil)

// ExportStore is a mock implementation of confrag.ExportStore.
type ExportStore struct {
	WriteSpaceFn   func(ctx context.Context, space *confrag.Space) error
	WritePageFn    func(ctx context.Context, page *confrag.Page) error
	WriteSummaryFn func(ctx context.Context, summary *confrag.RunSummary) error
}

func (s *ExportStore) WriteSpace(ctx context.Context, space *confrag.Space) error {
	return s.WriteSpaceFn(ctx, space)
}

func (s *ExportStore) WritePage(ctx context.Context, page *confrag.Page) error {
	return s.WritePageFn(ctx, page)
}

func (s *ExportStore) WriteSummary(ctx context.Context, summary *confrag.RunSummary) error {
	return s.WriteSummaryFn(ctx, summary)
}
