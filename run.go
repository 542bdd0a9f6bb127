package confrag

import "time"

// PageFailure records a single page that could not be downloaded.
type PageFailure struct {
	PageID string `json:"pageId"`
	Title  string `json:"title"`
	Err    string `json:"error"`
}

// RunSummary describes the outcome of one crawl run.
// Succeeded+Failed always equals Discovered.
type RunSummary struct {
	SpaceKey    string        `json:"spaceKey"`
	Discovered  int           `json:"discovered"`
	Succeeded   int           `json:"succeeded"`
	Failed      int           `json:"failed"`
	Failures    []PageFailure `json:"failures,omitempty"`
	StartedAt   time.Time     `json:"startedAt"`
	CompletedAt time.Time     `json:"completedAt"`
}
