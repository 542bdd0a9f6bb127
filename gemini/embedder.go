// Package gemini implements embedding and chat services backed by the
// Google Gemini API.
package gemini

import (
	"context"

	"github.com/asjoberg/confrag"
	"google.golang.org/genai"
)

// DefaultEmbeddingsModel is used when no model is configured.
const DefaultEmbeddingsModel = "gemini-embedding-001"

// Ensure Embedder implements confrag.Embedder at compile time.
var _ confrag.Embedder = (*Embedder)(nil)

// Embedder produces embedding vectors via the Gemini embeddings API.
// Documents and queries use different task types so the model can
// optimize each side of the retrieval pair.
type Embedder struct {
	client     *genai.Client
	model      string
	dimensions int32
}

// EmbedderOption configures an Embedder.
type EmbedderOption func(*Embedder)

// WithEmbeddingsModel overrides the embeddings model.
func WithEmbeddingsModel(model string) EmbedderOption {
	return func(e *Embedder) {
		if model != "" {
			e.model = model
		}
	}
}

// WithDimensions truncates output vectors to the given dimensionality.
// Zero keeps the model's native size.
func WithDimensions(n int) EmbedderOption {
	return func(e *Embedder) {
		if n > 0 {
			e.dimensions = int32(n)
		}
	}
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client, opts ...EmbedderOption) *Embedder {
	e := &Embedder{client: client, model: DefaultEmbeddingsModel}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EmbedDocuments embeds a batch of document texts for indexing.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	return e.embed(ctx, texts, "RETRIEVAL_DOCUMENT")
}

// EmbedQuery embeds a search query.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, confrag.Errorf(confrag.EINVALID, "Text to embed is required.")
	}

	vecs, err := e.embed(ctx, []string{text}, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (e *Embedder) embed(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	config := &genai.EmbedContentConfig{TaskType: taskType}
	if e.dimensions > 0 {
		config.OutputDimensionality = genai.Ptr(e.dimensions)
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, config)
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, confrag.Errorf(confrag.EINTERNAL, "gemini returned %d embeddings for %d texts", embeddingCount(result), len(texts))
	}

	vecs := make([][]float32, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, confrag.Errorf(confrag.EINTERNAL, "gemini returned an empty embedding at index %d", i)
		}
		vecs[i] = emb.Values
	}
	return vecs, nil
}

func embeddingCount(result *genai.EmbedContentResponse) int {
	if result == nil {
		return 0
	}
	return len(result.Embeddings)
}
