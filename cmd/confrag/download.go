package main

import (
	"fmt"

	"github.com/asjoberg/confrag"
	"github.com/asjoberg/confrag/crawl"
	"github.com/asjoberg/confrag/fs"
)

// Run executes the download command.
func (c *DownloadCmd) Run(deps *Dependencies) error {
	store := fs.NewExportStore(c.Out, c.Space)
	crawler := &crawl.Crawler{
		Source:    deps.Content,
		Converter: deps.Converter,
		Store:     store,
		Logger:    deps.Logger,
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d pages\n", event.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, crawl.SanitizeTitle(event.Title))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] failed %s: %v\n", event.Completed, event.Total, event.PageID, event.Error)
		}
	}

	summary, err := crawler.Run(deps.Ctx, c.Space, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", confrag.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Downloaded %d of %d pages to %s (%d failed)\n",
		summary.Succeeded, summary.Discovered, store.Dir(), summary.Failed)

	if summary.Failed > 0 {
		fmt.Fprintln(deps.Stderr, "Failed pages:")
		for _, failure := range summary.Failures {
			fmt.Fprintf(deps.Stderr, "  %s %s: %s\n", failure.PageID, crawl.SanitizeTitle(failure.Title), failure.Err)
		}
	}

	return nil
}
