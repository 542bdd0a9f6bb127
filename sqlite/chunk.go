package sqlite

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/asjoberg/confrag"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ confrag.ChunkService = (*ChunkService)(nil)

// ChunkService implements confrag.ChunkService using SQLite as a vector
// store. Similarity search is brute-force cosine over all stored
// embeddings, which is plenty for single-space corpora of a few
// thousand chunks.
type ChunkService struct {
	db       *DB
	embedder confrag.Embedder
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB, embedder confrag.Embedder) *ChunkService {
	return &ChunkService{db: db, embedder: embedder}
}

// CreateChunks embeds and stores a batch of chunks. Chunks that
// already carry an embedding are stored as-is; the rest are embedded
// in a single batch call.
func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*confrag.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	for _, chunk := range chunks {
		if err := chunk.Validate(); err != nil {
			return err
		}
	}

	var pending []*confrag.Chunk
	var texts []string
	for _, chunk := range chunks {
		if len(chunk.Embedding) == 0 {
			pending = append(pending, chunk)
			texts = append(texts, chunk.Content)
		}
	}

	if len(pending) > 0 {
		embeddings, err := s.embedder.EmbedDocuments(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding %d chunks: %w", len(pending), err)
		}
		if len(embeddings) != len(pending) {
			return confrag.Errorf(confrag.EINTERNAL, "embedder returned %d vectors for %d texts", len(embeddings), len(pending))
		}
		for i, chunk := range pending {
			chunk.Embedding = embeddings[i]
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, chunk := range chunks {
		if chunk.ID == "" {
			chunk.ID = uuid.New().String()
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO chunks (id, page_id, title, space_key, source_url, position, content, embedding, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, chunk.ID, chunk.PageID, chunk.Title, chunk.SpaceKey, chunk.SourceURL,
			chunk.Position, chunk.Content, encodeEmbedding(chunk.Embedding), now)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Search embeds the query and returns the most similar chunks,
// ordered by descending cosine similarity.
func (s *ChunkService) Search(ctx context.Context, query string, opts confrag.SearchOptions) ([]confrag.SearchResult, error) {
	if query == "" {
		return nil, confrag.Errorf(confrag.EINVALID, "Search query is required.")
	}

	queryVec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	sqlQuery := "SELECT id, page_id, title, space_key, source_url, position, content, embedding FROM chunks"
	var args []any
	if opts.SpaceKey != "" {
		sqlQuery += " WHERE space_key = ?"
		args = append(args, opts.SpaceKey)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []confrag.SearchResult
	for rows.Next() {
		var chunk confrag.Chunk
		var blob []byte

		if err := rows.Scan(&chunk.ID, &chunk.PageID, &chunk.Title, &chunk.SpaceKey,
			&chunk.SourceURL, &chunk.Position, &chunk.Content, &blob); err != nil {
			return nil, err
		}

		chunk.Embedding, err = decodeEmbedding(blob)
		if err != nil {
			return nil, fmt.Errorf("chunk %s: %w", chunk.ID, err)
		}

		score := cosineSimilarity(queryVec, chunk.Embedding)
		if score < opts.MinScore {
			continue
		}

		results = append(results, confrag.SearchResult{Chunk: &chunk, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	return results, nil
}

// Count returns the number of stored chunks.
func (s *ChunkService) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&count)
	return count, err
}

// DeleteBySpace removes all chunks belonging to a space.
func (s *ChunkService) DeleteBySpace(ctx context.Context, spaceKey string) error {
	if spaceKey == "" {
		return confrag.Errorf(confrag.EINVALID, "Space key is required.")
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE space_key = ?", spaceKey)
	return err
}

// encodeEmbedding serializes a vector as little-endian float32 bytes.
func encodeEmbedding(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeEmbedding(buf []byte) ([]float32, error) {
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("malformed embedding blob: %d bytes", len(buf))
	}
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec, nil
}

// cosineSimilarity returns the cosine of the angle between two
// vectors, or 0 when either vector is zero or the dimensions differ.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
