// Package bloom provides page-ID deduplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for page-ID deduplication during a crawl.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected IDs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// SeenOrAdd reports whether the ID has been seen before and records it.
// False positives are possible at the configured rate; false negatives
// are not.
func (f *Filter) SeenOrAdd(id string) bool {
	if f.f.TestString(id) {
		return true
	}
	f.f.AddString(id)
	return false
}

// EstimatedCount returns the approximate number of recorded IDs.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
