package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuchat-be/internal/pkg/apperrors"
)

func words(n int, prefix string) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = prefix
	}
	return strings.Join(parts, " ")
}

func TestNewRejectsOverlapNotSmallerThanChunk(t *testing.T) {
	_, err := New(NewTokenizer(), Config{ChunkTokens: 100, OverlapTokens: 150})
	assert.ErrorIs(t, err, apperrors.ErrChunkConfig)

	_, err = New(NewTokenizer(), Config{ChunkTokens: 100, OverlapTokens: 100})
	assert.ErrorIs(t, err, apperrors.ErrChunkConfig)
}

func TestSinglePageBelowWindowYieldsOneChunk(t *testing.T) {
	c, err := New(NewTokenizer(), Config{ChunkTokens: 500, OverlapTokens: 100})
	require.NoError(t, err)

	chunks := c.ChunkPages([]Page{{Number: 1, Text: words(50, "A")}})

	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, 1, chunks[0].PageStart)
	assert.Equal(t, 1, chunks[0].PageEnd)
	assert.Equal(t, 50, chunks[0].TokenCount)
}

func TestEmptyAndWhitespacePagesYieldNothing(t *testing.T) {
	c, err := New(NewTokenizer(), DefaultConfig())
	require.NoError(t, err)

	assert.Empty(t, c.ChunkPages(nil))
	assert.Empty(t, c.ChunkPages([]Page{
		{Number: 1, Text: ""},
		{Number: 2, Text: "   \n\t "},
	}))
}

func TestChunkingIsDeterministic(t *testing.T) {
	c, err := New(NewTokenizer(), Config{ChunkTokens: 40, OverlapTokens: 10})
	require.NoError(t, err)

	pages := []Page{
		{Number: 1, Text: words(30, "alpha")},
		{Number: 2, Text: words(25, "beta")},
		{Number: 3, Text: words(60, "gamma")},
		{Number: 4, Text: words(5, "delta")},
	}

	first := c.ChunkPages(pages)
	second := c.ChunkPages(pages)
	assert.Equal(t, first, second)
}

func TestChunkIndexesAreContiguousAndPageRangesOrdered(t *testing.T) {
	c, err := New(NewTokenizer(), Config{ChunkTokens: 20, OverlapTokens: 5})
	require.NoError(t, err)

	pages := make([]Page, 0, 10)
	for i := 1; i <= 10; i++ {
		pages = append(pages, Page{Number: i, Text: words(12, "w")})
	}

	chunks := c.ChunkPages(pages)
	require.NotEmpty(t, chunks)

	for i, ch := range chunks {
		assert.Equal(t, i, ch.Index)
		assert.LessOrEqual(t, ch.PageStart, ch.PageEnd)
		assert.Greater(t, ch.TokenCount, 0)
		assert.NotEmpty(t, ch.Content)
	}
}

func TestOversizedPageEmitsImmediately(t *testing.T) {
	c, err := New(NewTokenizer(), Config{ChunkTokens: 50, OverlapTokens: 10})
	require.NoError(t, err)

	chunks := c.ChunkPages([]Page{
		{Number: 1, Text: words(120, "big")},
		{Number: 2, Text: words(5, "tail")},
	})

	require.NotEmpty(t, chunks)
	// The oversized page fills the first window on its own.
	assert.Equal(t, 1, chunks[0].PageStart)
	assert.Equal(t, 1, chunks[0].PageEnd)
	assert.GreaterOrEqual(t, chunks[0].TokenCount, 50)
}

func TestOverlapSeedsNextWindow(t *testing.T) {
	c, err := New(NewTokenizer(), Config{ChunkTokens: 10, OverlapTokens: 3})
	require.NoError(t, err)

	pages := []Page{
		{Number: 1, Text: "a b c d e f g h i j"},
		{Number: 2, Text: "k l m n o"},
	}

	chunks := c.ChunkPages(pages)
	require.GreaterOrEqual(t, len(chunks), 2)

	// The second window starts with the last 3 tokens of the first.
	assert.True(t, strings.HasPrefix(chunks[1].Content, "h i j"))
}

func TestTokenizerSchemeIsStable(t *testing.T) {
	tok := NewTokenizer()
	assert.Equal(t, "ws/1", tok.Version())
	assert.Equal(t, []string{"one", "two", "three"}, tok.Encode(" one\n two\tthree "))
	assert.Equal(t, "one two three", tok.Decode([]string{"one", "two", "three"}))
}
