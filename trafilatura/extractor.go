// Package trafilatura extracts main content from web pages, used when
// ingesting supplemental URLs that are not part of a wiki export.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/asjoberg/confrag"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements confrag.Extractor at compile time.
var _ confrag.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to strip navigation, sidebars, and
// footers from HTML, keeping the article body.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*confrag.ExtractResult, error) {
	if rawHTML == "" {
		return nil, confrag.Errorf(confrag.EINVALID, "HTML input is required.")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &confrag.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
