package confrag

import "context"

// Chunk represents a bounded slice of a page's text optimized for embedding
// and retrieval. Every chunk carries enough source metadata for citation.
type Chunk struct {
	ID        string    `json:"id"`
	PageID    string    `json:"pageId"`
	Title     string    `json:"title"`
	SpaceKey  string    `json:"spaceKey"`
	SourceURL string    `json:"sourceUrl"`
	Position  int       `json:"position"`
	Content   string    `json:"content"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.PageID == "" {
		return Errorf(EINVALID, "chunk page ID required")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	return nil
}

// Embedder computes vector representations of text using an external
// embedding model. Document and query embeddings may use different task
// types, so they are separate operations.
type Embedder interface {
	// EmbedDocuments embeds a batch of chunk contents for storage.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery embeds a search query.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// ChunkService stores embedded chunks and answers similarity queries.
type ChunkService interface {
	// CreateChunks embeds and persists chunks in a batch.
	CreateChunks(ctx context.Context, chunks []*Chunk) error

	// Search returns chunks ranked by relevance to the query.
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)

	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)

	// DeleteBySpace removes all chunks belonging to a space.
	DeleteBySpace(ctx context.Context, spaceKey string) error
}

// SearchOptions configures search behavior.
type SearchOptions struct {
	// Filter results to a specific space.
	SpaceKey string `json:"spaceKey,omitempty"`

	// Maximum number of results to return.
	Limit int `json:"limit,omitempty"`

	// Minimum similarity score (0-1).
	MinScore float32 `json:"minScore,omitempty"`
}

// SearchResult represents a search match.
type SearchResult struct {
	Chunk *Chunk  `json:"chunk"`
	Score float32 `json:"score"`
}
