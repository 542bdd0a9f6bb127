package mock

import "github.com/asjoberg/confrag"

var _ confrag.Converter = (*Converter)(nil)

// Converter is a mock implementation of confrag.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
