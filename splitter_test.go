package confrag_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/asjoberg/confrag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitter_Split(t *testing.T) {
	t.Parallel()

	t.Run("blank input returns nil", func(t *testing.T) {
		t.Parallel()

		s := confrag.NewSplitter(100, 10)
		assert.Nil(t, s.Split(""))
		assert.Nil(t, s.Split("   \n\t  "))
	})

	t.Run("short input returns single chunk", func(t *testing.T) {
		t.Parallel()

		s := confrag.NewSplitter(100, 10)
		chunks := s.Split("hello world")

		require.Len(t, chunks, 1)
		assert.Equal(t, "hello world", chunks[0])
	})

	t.Run("every chunk respects the size bound", func(t *testing.T) {
		t.Parallel()

		s := confrag.NewSplitter(50, 10)
		text := strings.Repeat("alpha beta gamma delta epsilon zeta ", 40)
		chunks := s.Split(text)

		require.NotEmpty(t, chunks)
		for _, chunk := range chunks {
			assert.LessOrEqual(t, len([]rune(chunk)), 50)
			assert.NotEmpty(t, chunk)
		}
	})

	t.Run("prefers paragraph breaks", func(t *testing.T) {
		t.Parallel()

		s := confrag.NewSplitter(40, 0)
		text := "first paragraph of text here\n\nsecond paragraph of text here"
		chunks := s.Split(text)

		require.Len(t, chunks, 2)
		assert.Equal(t, "first paragraph of text here", chunks[0])
		assert.Equal(t, "second paragraph of text here", chunks[1])
	})

	t.Run("consecutive chunks overlap", func(t *testing.T) {
		t.Parallel()

		s := confrag.NewSplitter(30, 10)
		text := strings.Repeat("one two three four five six ", 10)
		chunks := s.Split(text)

		require.Greater(t, len(chunks), 1)
		// The tail of each chunk reappears at the head of the next.
		for i := 1; i < len(chunks); i++ {
			prev := chunks[i-1]
			head := strings.Fields(chunks[i])[0]
			assert.Contains(t, prev, head)
		}
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		t.Parallel()

		s := confrag.NewSplitter(80, 20)
		text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 30)

		first := s.Split(text)
		second := s.Split(text)

		assert.Equal(t, first, second)
	})

	t.Run("covers all content", func(t *testing.T) {
		t.Parallel()

		s := confrag.NewSplitter(50, 0)
		text := strings.Repeat("word ", 100)
		chunks := s.Split(text)

		joined := strings.Join(chunks, " ")
		assert.Equal(t, strings.Fields(text), strings.Fields(joined))
	})

	t.Run("handles multibyte runes without splitting them", func(t *testing.T) {
		t.Parallel()

		s := confrag.NewSplitter(20, 5)
		text := strings.Repeat("åäö ", 30)
		chunks := s.Split(text)

		require.NotEmpty(t, chunks)
		for _, chunk := range chunks {
			assert.True(t, utf8.ValidString(chunk))
			assert.LessOrEqual(t, len([]rune(chunk)), 20)
		}
	})
}

func TestNewSplitter_Defaults(t *testing.T) {
	t.Parallel()

	t.Run("non-positive size uses default", func(t *testing.T) {
		t.Parallel()

		s := confrag.NewSplitter(0, 0)
		assert.Equal(t, confrag.DefaultChunkSize, s.ChunkSize)
	})

	t.Run("negative overlap clamps to zero", func(t *testing.T) {
		t.Parallel()

		s := confrag.NewSplitter(100, -5)
		assert.Equal(t, 0, s.Overlap)
	})

	t.Run("oversized overlap clamps to half", func(t *testing.T) {
		t.Parallel()

		s := confrag.NewSplitter(100, 150)
		assert.Equal(t, 50, s.Overlap)
	})
}
