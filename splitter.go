package confrag

import "strings"

// Default splitter parameters, matching common embedding chunk sizes.
const (
	DefaultChunkSize    = 1500
	DefaultChunkOverlap = 200
)

// Splitter splits text into bounded, overlapping chunks.
// Splitting is deterministic: identical input and parameters always
// produce identical chunks.
type Splitter struct {
	// ChunkSize is the maximum chunk length in runes.
	ChunkSize int

	// Overlap is how many runes consecutive chunks share.
	Overlap int
}

// NewSplitter creates a Splitter with the given parameters.
// Non-positive size falls back to DefaultChunkSize; an overlap that is
// negative or not smaller than the size is clamped.
func NewSplitter(size, overlap int) *Splitter {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 2
	}
	return &Splitter{ChunkSize: size, Overlap: overlap}
}

// Split breaks text into chunks of at most ChunkSize runes, preferring to
// cut at paragraph breaks, then line breaks, then word boundaries.
// Consecutive chunks overlap by up to Overlap runes. Returns nil for
// blank input.
func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	size := s.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	overlap := s.Overlap
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 2
	}

	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			if chunk := strings.TrimSpace(string(runes[start:])); chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		cut := start + breakPoint(runes[start:end])
		if chunk := strings.TrimSpace(string(runes[start:cut])); chunk != "" {
			chunks = append(chunks, chunk)
		}

		// Step back for overlap, but always make forward progress.
		next := cut - overlap
		if next <= start {
			next = cut
		}
		start = next
	}

	return chunks
}

// breakPoint returns the preferred cut offset within the window: the last
// paragraph break, line break, or space in the second half of the window,
// in that order of preference. Falls back to a hard cut at the window end.
func breakPoint(window []rune) int {
	minKeep := len(window) / 2

	// Paragraph break
	for i := len(window) - 1; i > minKeep; i-- {
		if window[i] == '\n' && window[i-1] == '\n' {
			return i + 1
		}
	}

	// Line break
	for i := len(window) - 1; i >= minKeep; i-- {
		if window[i] == '\n' {
			return i + 1
		}
	}

	// Word boundary
	for i := len(window) - 1; i >= minKeep; i-- {
		if window[i] == ' ' {
			return i + 1
		}
	}

	return len(window)
}
