package confrag

import (
	"context"
	"strings"
	"time"
)

// Ancestor identifies one level of a page's position in the space hierarchy.
type Ancestor struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Page represents a downloaded Confluence page.
// A page is immutable after it has been written by the crawler.
type Page struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	SpaceKey      string     `json:"spaceKey"`
	URL           string     `json:"url"`
	Ancestors     []Ancestor `json:"ancestors"`
	StorageHTML   string     `json:"storageHtml"`
	PlainText     string     `json:"plainText"`
	ContentHash   string     `json:"contentHash"`
	Author        string     `json:"author"`
	Version       int        `json:"version"`
	CreatedAt     time.Time  `json:"createdAt"`
	ModifiedAt    time.Time  `json:"modifiedAt"`
	Labels        []string   `json:"labels"`
	DownloadedAt  time.Time  `json:"downloadedAt"`
	ContentLength int        `json:"contentLength"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.ID == "" {
		return Errorf(EINVALID, "page ID required")
	}
	if p.SpaceKey == "" {
		return Errorf(EINVALID, "page space key required")
	}
	return nil
}

// HierarchyPath returns the page's position in the space as ancestor titles
// joined with the page's own title, e.g. "Handbook > Onboarding > Laptops".
func (p *Page) HierarchyPath() string {
	parts := make([]string, 0, len(p.Ancestors)+1)
	for _, a := range p.Ancestors {
		parts = append(parts, a.Title)
	}
	parts = append(parts, p.Title)
	return strings.Join(parts, " > ")
}

// PageSummary is the subset of page fields returned by the listing endpoint.
type PageSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Space represents a Confluence space.
type Space struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	HomepageID  string `json:"homepageId,omitempty"`
}

// ContentService is the boundary to the Confluence REST API.
type ContentService interface {
	// Space retrieves metadata about a space.
	// Returns ENOTFOUND if the space does not exist.
	Space(ctx context.Context, key string) (*Space, error)

	// ListPages enumerates all current pages in a space in listing order.
	// It paginates the listing endpoint until a short or empty page is
	// returned. Any page request failure aborts the listing.
	ListPages(ctx context.Context, key string) ([]PageSummary, error)

	// FetchPage retrieves the full representation of a single page:
	// storage-format body, ancestors, version, and labels.
	// Returns ENOTFOUND if the page does not exist.
	FetchPage(ctx context.Context, id string) (*Page, error)
}

// ExportStore persists crawled content durably, one pair of files per page,
// so that partial runs leave usable output.
type ExportStore interface {
	// WriteSpace writes the space metadata file.
	WriteSpace(ctx context.Context, space *Space) error

	// WritePage writes a page as one JSON file and one text file, keyed
	// by a filesystem-safe form of (ID, title). Writing the same page
	// twice overwrites the same two files.
	WritePage(ctx context.Context, page *Page) error

	// WriteSummary writes the run summary file.
	WriteSummary(ctx context.Context, summary *RunSummary) error
}

// Fetcher retrieves raw HTML from URLs. Used by the direct web-loading path.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (html string, err error)
	Close() error
}

// Converter converts storage-format markup (XHTML) to markdown-ish
// plain text suitable for chunking and embedding.
type Converter interface {
	Convert(html string) (string, error)
}

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	Title       string
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// RequestLimiter spaces out requests to the source system.
type RequestLimiter interface {
	// Wait blocks until the next request is allowed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context) error
}
