// Package htmltomarkdown converts Confluence storage-format markup into
// markdown-ish plain text. Storage format is XHTML with Confluence-specific
// macro elements (ac:structured-macro, ri:page and friends), which are
// normalized with goquery before the markdown conversion runs.
package htmltomarkdown

import (
	"html"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/asjoberg/confrag"
)

// Ensure Converter implements confrag.Converter at compile time.
var _ confrag.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert storage markup to text.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms storage-format markup into markdown text.
func (c *Converter) Convert(storage string) (string, error) {
	if strings.TrimSpace(storage) == "" {
		return "", confrag.Errorf(confrag.EINVALID, "empty markup input")
	}

	normalized, err := normalizeStorage(storage)
	if err != nil {
		return "", err
	}

	result, err := c.conv.ConvertString(normalized)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}

// normalizeStorage rewrites Confluence macro elements into plain HTML the
// markdown converter understands. Code-like macros become pre blocks, page
// links become their target title, and any other macro is unwrapped so its
// rich-text body survives.
func normalizeStorage(storage string) (string, error) {
	// The HTML parser would swallow CDATA sections as bogus comments;
	// stripping the markers keeps their content as text.
	s := strings.ReplaceAll(storage, "<![CDATA[", "")
	s = strings.ReplaceAll(s, "]]>", "")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return "", err
	}

	doc.Find(`ac\:structured-macro`).Each(func(_ int, sel *goquery.Selection) {
		name, _ := sel.Attr("ac:name")
		switch name {
		case "code", "noformat":
			body := strings.TrimSpace(sel.Text())
			sel.ReplaceWithHtml("<pre>" + html.EscapeString(body) + "</pre>")
		default:
			if inner, err := sel.Html(); err == nil {
				sel.ReplaceWithHtml(inner)
			}
		}
	})

	doc.Find(`ri\:page`).Each(func(_ int, sel *goquery.Selection) {
		if title, ok := sel.Attr("ri:content-title"); ok && title != "" {
			sel.ReplaceWithHtml(html.EscapeString(title))
		}
	})

	return doc.Find("body").Html()
}
