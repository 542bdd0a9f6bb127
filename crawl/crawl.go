// Package crawl orchestrates downloading a Confluence space: space
// metadata, paginated listing, per-page fetch and conversion, durable
// persistence, and the run summary.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/asjoberg/confrag"
	"github.com/asjoberg/confrag/bloom"
	"github.com/cespare/xxhash/v2"
)

// Seen-filter sizing. A space rarely exceeds a few thousand pages; the
// false positive rate is kept low enough that silently skipping a real
// page is not a practical concern.
const (
	seenExpectedPages     = 50000
	seenFalsePositiveRate = 0.000001
)

// Crawler downloads all pages of a space, one page at a time.
type Crawler struct {
	Source    confrag.ContentService
	Converter confrag.Converter
	Store     confrag.ExportStore
	Logger    *slog.Logger
}

// ProgressEvent reports progress during a crawl run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	PageID    string
	Title     string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types emitted during a run.
const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Run downloads every current page of the space and persists it. Listing
// and space metadata failures are fatal; a single page's failure is
// recorded in the run summary and the run continues with the next page.
// The returned summary always satisfies Succeeded+Failed == Discovered.
func (c *Crawler) Run(ctx context.Context, spaceKey string, progress ProgressFunc) (*confrag.RunSummary, error) {
	if spaceKey == "" {
		return nil, confrag.Errorf(confrag.EINVALID, "space key required")
	}

	summary := &confrag.RunSummary{
		SpaceKey:  spaceKey,
		StartedAt: time.Now().UTC(),
	}

	space, err := c.Source.Space(ctx, spaceKey)
	if err != nil {
		return nil, fmt.Errorf("space metadata: %w", err)
	}
	if err := c.Store.WriteSpace(ctx, space); err != nil {
		return nil, fmt.Errorf("writing space metadata: %w", err)
	}
	c.logger().Info("crawling space", "key", space.Key, "name", SanitizeTitle(space.Name))

	listed, err := c.Source.ListPages(ctx, spaceKey)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}

	// The listing endpoint can return a page twice when content moves
	// between pagination windows mid-listing.
	seen := bloom.NewFilter(seenExpectedPages, seenFalsePositiveRate)
	items := make([]confrag.PageSummary, 0, len(listed))
	for _, item := range listed {
		if seen.SeenOrAdd(item.ID) {
			c.logger().Warn("duplicate page in listing", "id", item.ID)
			continue
		}
		items = append(items, item)
	}

	summary.Discovered = len(items)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: len(items)})
	}

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c.logger().Info("processing page",
			"id", item.ID,
			"title", SanitizeTitle(item.Title),
			"progress", fmt.Sprintf("%d/%d", i+1, len(items)),
		)

		page, err := c.downloadPage(ctx, item.ID)
		if err == nil {
			err = c.Store.WritePage(ctx, page)
		}

		if err != nil {
			summary.Failures = append(summary.Failures, confrag.PageFailure{
				PageID: item.ID,
				Title:  item.Title,
				Err:    err.Error(),
			})
			c.logger().Error("page failed",
				"id", item.ID,
				"title", SanitizeTitle(item.Title),
				"err", err,
			)
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: i + 1,
					Total:     len(items),
					PageID:    item.ID,
					Title:     item.Title,
					Error:     err,
				})
			}
			continue
		}

		summary.Succeeded++
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: i + 1,
				Total:     len(items),
				PageID:    item.ID,
				Title:     item.Title,
			})
		}
	}

	summary.Failed = len(summary.Failures)
	summary.CompletedAt = time.Now().UTC()

	if err := c.Store.WriteSummary(ctx, summary); err != nil {
		return nil, fmt.Errorf("writing run summary: %w", err)
	}

	c.logger().Info("crawl finished",
		"discovered", summary.Discovered,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
	)
	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: len(items),
			Total:     len(items),
		})
	}

	return summary, nil
}

// downloadPage fetches a page's full representation and derives its plain
// text. A page without a storage body yields empty plain text rather than
// an error.
func (c *Crawler) downloadPage(ctx context.Context, id string) (*confrag.Page, error) {
	page, err := c.Source.FetchPage(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(page.StorageHTML) != "" {
		text, err := c.Converter.Convert(page.StorageHTML)
		if err != nil {
			return nil, fmt.Errorf("converting page %s: %w", id, err)
		}
		page.PlainText = text
	}

	page.ContentHash = fmt.Sprintf("%x", xxhash.Sum64String(page.PlainText))
	page.ContentLength = len(page.PlainText)

	return page, nil
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
