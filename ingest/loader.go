// Package ingest loads content into the chunk store, either from a
// crawled space export on disk or directly from web URLs.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/asjoberg/confrag"
	"github.com/asjoberg/confrag/fs"
)

// Result reports what a load operation ingested.
type Result struct {
	// Documents is how many source documents contributed chunks.
	Documents int

	// Chunks is how many chunks were created.
	Chunks int
}

// Loader splits source documents into chunks and stores them.
type Loader struct {
	Chunks   confrag.ChunkService
	Splitter *confrag.Splitter

	// Fetcher, Extractor, and Converter are only needed by LoadURLs.
	Fetcher   confrag.Fetcher
	Extractor confrag.Extractor
	Converter confrag.Converter

	Logger *slog.Logger
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

func (l *Loader) splitter() *confrag.Splitter {
	if l.Splitter != nil {
		return l.Splitter
	}
	return confrag.NewSplitter(confrag.DefaultChunkSize, confrag.DefaultChunkOverlap)
}

// LoadExport ingests a crawled space export directory: every per-page
// JSON file is split into chunks and stored. The space metadata and run
// summary files are skipped. Returns EINVALID when the directory yields
// no chunks.
func (l *Loader) LoadExport(ctx context.Context, dir string) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading export directory: %w", err)
	}

	var chunks []*confrag.Chunk
	result := &Result{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if entry.Name() == fs.SpaceMetadataFile || entry.Name() == fs.RunSummaryFile {
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		var page confrag.Page
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", entry.Name(), err)
		}

		pageChunks := l.chunkPage(&page)
		if len(pageChunks) == 0 {
			l.logger().Warn("page has no text to chunk", slog.String("page_id", page.ID), slog.String("file", entry.Name()))
			continue
		}

		result.Documents++
		chunks = append(chunks, pageChunks...)
	}

	if len(chunks) == 0 {
		return nil, confrag.Errorf(confrag.EINVALID, "No document chunks were created from %q.", dir)
	}

	if err := l.Chunks.CreateChunks(ctx, chunks); err != nil {
		return nil, err
	}

	result.Chunks = len(chunks)
	l.logger().Info("export loaded",
		slog.String("dir", dir),
		slog.Int("documents", result.Documents),
		slog.Int("chunks", result.Chunks))
	return result, nil
}

// LoadURLs fetches each URL, extracts its main content, converts it to
// plain text, and ingests the resulting chunks. A URL that fails to
// fetch or extract fails the whole load. Returns EINVALID when no
// chunks are produced.
func (l *Loader) LoadURLs(ctx context.Context, urls []string) (*Result, error) {
	if len(urls) == 0 {
		return nil, confrag.Errorf(confrag.EINVALID, "At least one URL is required.")
	}

	var chunks []*confrag.Chunk
	result := &Result{}
	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		html, err := l.Fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", url, err)
		}

		extracted, err := l.Extractor.Extract(html)
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", url, err)
		}

		text, err := l.Converter.Convert(extracted.ContentHTML)
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", url, err)
		}

		pieces := l.splitter().Split(text)
		if len(pieces) == 0 {
			l.logger().Warn("URL yielded no text", slog.String("url", url))
			continue
		}

		for i, piece := range pieces {
			chunks = append(chunks, &confrag.Chunk{
				PageID:    url,
				Title:     extracted.Title,
				SourceURL: url,
				Position:  i,
				Content:   piece,
			})
		}
		result.Documents++
	}

	if len(chunks) == 0 {
		return nil, confrag.Errorf(confrag.EINVALID, "No document chunks were created from the provided URLs.")
	}

	if err := l.Chunks.CreateChunks(ctx, chunks); err != nil {
		return nil, err
	}

	result.Chunks = len(chunks)
	l.logger().Info("URLs loaded",
		slog.Int("urls", len(urls)),
		slog.Int("documents", result.Documents),
		slog.Int("chunks", result.Chunks))
	return result, nil
}

// chunkPage splits a page's plain text into chunks carrying the page's
// source metadata.
func (l *Loader) chunkPage(page *confrag.Page) []*confrag.Chunk {
	pieces := l.splitter().Split(page.PlainText)
	if len(pieces) == 0 {
		return nil
	}

	chunks := make([]*confrag.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = &confrag.Chunk{
			PageID:    page.ID,
			Title:     page.Title,
			SpaceKey:  page.SpaceKey,
			SourceURL: page.URL,
			Position:  i,
			Content:   piece,
		}
	}
	return chunks
}
