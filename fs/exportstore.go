// Package fs provides file-based storage for crawled spaces.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/asjoberg/confrag"
)

// MaxTitleLength bounds the sanitized title portion of a file name.
const MaxTitleLength = 100

// Reserved file names written alongside per-page files.
const (
	SpaceMetadataFile = "space_metadata.json"
	RunSummaryFile    = "run_summary.json"
)

// SafeFileName returns a filesystem-safe base name for a page, built from
// its ID and a sanitized title. Only alphanumerics, spaces, dashes, and
// underscores survive; the title portion is capped at MaxTitleLength runes
// and right-trimmed. The same page always maps to the same name.
func SafeFileName(id, title string) string {
	var sb strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			sb.WriteRune(r)
		}
	}
	safe := sb.String()
	if runes := []rune(safe); len(runes) > MaxTitleLength {
		safe = string(runes[:MaxTitleLength])
	}
	safe = strings.TrimRight(safe, " ")
	return id + "_" + safe
}

// FormatPageText renders a page as human-readable text: a fixed header
// block followed by the plain text body.
func FormatPageText(page *confrag.Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", page.Title)
	fmt.Fprintf(&b, "Space: %s\n", page.SpaceKey)
	fmt.Fprintf(&b, "URL: %s\n", page.URL)
	fmt.Fprintf(&b, "Hierarchy: %s\n", page.HierarchyPath())
	fmt.Fprintf(&b, "Author: %s\n", page.Author)
	fmt.Fprintf(&b, "Modified: %s\n", page.ModifiedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Labels: %s\n", strings.Join(page.Labels, ", "))
	b.WriteString(strings.Repeat("=", 80))
	b.WriteString("\n\n")
	b.WriteString(page.PlainText)
	return b.String()
}

// Ensure ExportStore implements confrag.ExportStore at compile time.
var _ confrag.ExportStore = (*ExportStore)(nil)

// ExportStore writes crawled content to a per-space output directory:
// one JSON and one text file per page, plus space metadata and a run
// summary. Writes are idempotent per page.
type ExportStore struct {
	baseDir  string
	spaceKey string
}

// NewExportStore creates an ExportStore writing to baseDir/spaceKey.
func NewExportStore(baseDir, spaceKey string) *ExportStore {
	return &ExportStore{baseDir: baseDir, spaceKey: spaceKey}
}

// Dir returns the output directory for this space.
func (s *ExportStore) Dir() string {
	return filepath.Join(s.baseDir, s.spaceKey)
}

func (s *ExportStore) writeJSON(name string, v any) error {
	if err := os.MkdirAll(s.Dir(), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.Dir(), name), data, 0644)
}

// WriteSpace writes the space metadata file.
func (s *ExportStore) WriteSpace(ctx context.Context, space *confrag.Space) error {
	return s.writeJSON(SpaceMetadataFile, space)
}

// WritePage writes a page as a JSON dump and a text rendering. Writing the
// same page twice overwrites the same two files.
func (s *ExportStore) WritePage(ctx context.Context, page *confrag.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	name := SafeFileName(page.ID, page.Title)
	if err := s.writeJSON(name+".json", page); err != nil {
		return err
	}

	text := FormatPageText(page)
	return os.WriteFile(filepath.Join(s.Dir(), name+".txt"), []byte(text), 0644)
}

// WriteSummary writes the run summary file.
func (s *ExportStore) WriteSummary(ctx context.Context, summary *confrag.RunSummary) error {
	return s.writeJSON(RunSummaryFile, summary)
}
