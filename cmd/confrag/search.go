package main

import (
	"fmt"
	"strings"

	"github.com/asjoberg/confrag"
	"github.com/charmbracelet/lipgloss"
)

var (
	scoreStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	separatorStyle = lipgloss.NewStyle().Faint(true)
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	topK := c.TopK
	if topK <= 0 {
		topK = deps.Config.TopK
	}

	fmt.Fprintf(deps.Stdout, "Searching top %d results for query: %q\n\n", topK, c.Query)

	results, err := deps.Chunks.Search(deps.Ctx, c.Query, confrag.SearchOptions{
		Limit:    topK,
		SpaceKey: c.Space,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", confrag.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results found for the query.")
		return nil
	}

	separator := separatorStyle.Render(strings.Repeat("=", 70))
	for _, result := range results {
		fmt.Fprintf(deps.Stdout, "%s %.4f\n", scoreStyle.Render("Score:"), result.Score)
		fmt.Fprintf(deps.Stdout, "Content: %s\n", result.Chunk.Content)
		fmt.Fprintln(deps.Stdout, separator)
	}

	return nil
}
