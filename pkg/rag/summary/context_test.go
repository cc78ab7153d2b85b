package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuchat-be/pkg/chunker"
)

func TestBuildDocumentContext_Format(t *testing.T) {
	chunks := []chunker.Chunk{
		{Index: 0, PageStart: 1, PageEnd: 2, Content: "first part"},
		{Index: 1, PageStart: 2, PageEnd: 3, Content: "second part"},
	}

	got := BuildDocumentContext(chunks)

	expected := "[pages 1-2, chunk 0]\nfirst part\n" +
		"\n" +
		"[pages 2-3, chunk 1]\nsecond part\n"
	assert.Equal(t, expected, got)
}

func TestBuildDocumentContext_StopsAtBudget(t *testing.T) {
	big := strings.Repeat("x", 9000)
	chunks := []chunker.Chunk{
		{Index: 0, PageStart: 1, PageEnd: 1, Content: big},
		{Index: 1, PageStart: 1, PageEnd: 1, Content: big},
		{Index: 2, PageStart: 1, PageEnd: 1, Content: "small tail"},
	}

	got := BuildDocumentContext(chunks)

	// The second big chunk overflows the budget; assembly stops there and
	// the small chunk after it is not considered.
	require.Contains(t, got, "chunk 0")
	assert.NotContains(t, got, "chunk 1]")
	assert.NotContains(t, got, "small tail")
	assert.LessOrEqual(t, len(got), MaxDocumentContextChars)
}

func TestBuildDocumentContext_Empty(t *testing.T) {
	assert.Equal(t, "", BuildDocumentContext(nil))
}
