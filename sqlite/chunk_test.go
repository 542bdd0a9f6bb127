package sqlite_test

import (
	"context"
	"testing"

	"github.com/asjoberg/confrag"
	"github.com/asjoberg/confrag/mock"
	"github.com/asjoberg/confrag/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vectorEmbedder returns fixed vectors from a lookup table so cosine
// ordering in tests is fully deterministic.
func vectorEmbedder(vectors map[string][]float32) *mock.Embedder {
	lookup := func(text string) []float32 {
		if vec, ok := vectors[text]; ok {
			return vec
		}
		return []float32{0, 0, 1}
	}
	return &mock.Embedder{
		EmbedDocumentsFn: func(_ context.Context, texts []string) ([][]float32, error) {
			out := make([][]float32, len(texts))
			for i, text := range texts {
				out[i] = lookup(text)
			}
			return out, nil
		},
		EmbedQueryFn: func(_ context.Context, text string) ([]float32, error) {
			return lookup(text), nil
		},
	}
}

func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestChunkService_CreateChunks(t *testing.T) {
	t.Parallel()

	t.Run("embeds and stores a batch", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		embedder := vectorEmbedder(map[string][]float32{
			"first":  {1, 0, 0},
			"second": {0, 1, 0},
		})
		svc := sqlite.NewChunkService(db, embedder)

		chunks := []*confrag.Chunk{
			{PageID: "100", Title: "Doc", SpaceKey: "ENG", Position: 0, Content: "first"},
			{PageID: "100", Title: "Doc", SpaceKey: "ENG", Position: 1, Content: "second"},
		}
		require.NoError(t, svc.CreateChunks(context.Background(), chunks))

		count, err := svc.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		// IDs assigned and embeddings attached.
		assert.NotEmpty(t, chunks[0].ID)
		assert.NotEmpty(t, chunks[1].ID)
		assert.Equal(t, []float32{1, 0, 0}, chunks[0].Embedding)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewChunkService(openTestDB(t), vectorEmbedder(nil))
		require.NoError(t, svc.CreateChunks(context.Background(), nil))
	})

	t.Run("invalid chunk is rejected before any write", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewChunkService(openTestDB(t), vectorEmbedder(nil))

		err := svc.CreateChunks(context.Background(), []*confrag.Chunk{
			{PageID: "1", Content: "ok"},
			{PageID: "2", Content: ""},
		})

		require.Error(t, err)
		assert.Equal(t, confrag.EINVALID, confrag.ErrorCode(err))

		count, err := svc.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("pre-embedded chunks skip the embedder", func(t *testing.T) {
		t.Parallel()

		embedder := &mock.Embedder{
			EmbedDocumentsFn: func(context.Context, []string) ([][]float32, error) {
				t.Fatal("embedder must not be called")
				return nil, nil
			},
		}
		svc := sqlite.NewChunkService(openTestDB(t), embedder)

		err := svc.CreateChunks(context.Background(), []*confrag.Chunk{
			{PageID: "1", Content: "text", Embedding: []float32{1, 2, 3}},
		})
		require.NoError(t, err)
	})
}

func TestChunkService_Search(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, svc *sqlite.ChunkService) {
		t.Helper()
		require.NoError(t, svc.CreateChunks(context.Background(), []*confrag.Chunk{
			{PageID: "100", Title: "Laptops", SpaceKey: "ENG", Position: 0, Content: "laptop setup"},
			{PageID: "200", Title: "Expenses", SpaceKey: "ENG", Position: 0, Content: "expense policy"},
			{PageID: "300", Title: "Branding", SpaceKey: "MKT", Position: 0, Content: "brand colors"},
		}))
	}

	vectors := map[string][]float32{
		"laptop setup":   {1, 0, 0},
		"expense policy": {0.7, 0.7, 0},
		"brand colors":   {0.9, 0.1, 0},
		"laptops?":       {1, 0, 0},
	}

	t.Run("ranks by cosine similarity", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewChunkService(openTestDB(t), vectorEmbedder(vectors))
		seed(t, svc)

		results, err := svc.Search(context.Background(), "laptops?", confrag.SearchOptions{Limit: 3})

		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "laptop setup", results[0].Chunk.Content)
		assert.InDelta(t, 1.0, results[0].Score, 0.001)
		assert.Equal(t, "brand colors", results[1].Chunk.Content)
		assert.Greater(t, results[1].Score, results[2].Score)
	})

	t.Run("limit caps the result count", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewChunkService(openTestDB(t), vectorEmbedder(vectors))
		seed(t, svc)

		results, err := svc.Search(context.Background(), "laptops?", confrag.SearchOptions{Limit: 1})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "laptop setup", results[0].Chunk.Content)
	})

	t.Run("space filter narrows the candidate set", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewChunkService(openTestDB(t), vectorEmbedder(vectors))
		seed(t, svc)

		results, err := svc.Search(context.Background(), "laptops?", confrag.SearchOptions{SpaceKey: "MKT", Limit: 10})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "MKT", results[0].Chunk.SpaceKey)
	})

	t.Run("minimum score drops weak matches", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewChunkService(openTestDB(t), vectorEmbedder(vectors))
		seed(t, svc)

		results, err := svc.Search(context.Background(), "laptops?", confrag.SearchOptions{Limit: 10, MinScore: 0.95})

		require.NoError(t, err)
		require.Len(t, results, 2)
	})

	t.Run("empty query is invalid", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewChunkService(openTestDB(t), vectorEmbedder(vectors))

		_, err := svc.Search(context.Background(), "", confrag.SearchOptions{})

		require.Error(t, err)
		assert.Equal(t, confrag.EINVALID, confrag.ErrorCode(err))
	})

	t.Run("empty store returns no results", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewChunkService(openTestDB(t), vectorEmbedder(vectors))

		results, err := svc.Search(context.Background(), "laptops?", confrag.SearchOptions{Limit: 5})

		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestChunkService_DeleteBySpace(t *testing.T) {
	t.Parallel()

	t.Run("removes only the named space", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewChunkService(openTestDB(t), vectorEmbedder(nil))
		require.NoError(t, svc.CreateChunks(context.Background(), []*confrag.Chunk{
			{PageID: "1", SpaceKey: "ENG", Content: "a"},
			{PageID: "2", SpaceKey: "ENG", Content: "b"},
			{PageID: "3", SpaceKey: "MKT", Content: "c"},
		}))

		require.NoError(t, svc.DeleteBySpace(context.Background(), "ENG"))

		count, err := svc.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("empty key is invalid", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewChunkService(openTestDB(t), vectorEmbedder(nil))
		err := svc.DeleteBySpace(context.Background(), "")

		require.Error(t, err)
		assert.Equal(t, confrag.EINVALID, confrag.ErrorCode(err))
	})
}
