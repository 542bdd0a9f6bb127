package mock

import "github.com/asjoberg/confrag"

var _ confrag.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of confrag.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*confrag.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*confrag.ExtractResult, error) {
	return e.ExtractFn(html)
}
