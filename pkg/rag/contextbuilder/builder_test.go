package contextbuilder

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuchat-be/pkg/rag"
)

func candidate(score float64, content string) rag.Candidate {
	return rag.Candidate{
		DocumentId: uuid.New(),
		ChunkIndex: 0,
		PageStart:  1,
		PageEnd:    2,
		Content:    content,
		Score:      score,
	}
}

func TestBuildEmptyInputReturnsEmptyString(t *testing.T) {
	assert.Equal(t, "", Build(nil))
	assert.Equal(t, "", Build([]rag.Candidate{}))
}

func TestBuildFormatsSourceBlocks(t *testing.T) {
	docId := uuid.New()
	out := Build([]rag.Candidate{{
		DocumentId: docId,
		ChunkIndex: 3,
		PageStart:  2,
		PageEnd:    4,
		Content:    "chunk body",
		Score:      0.1234,
	}})

	expected := fmt.Sprintf(
		"SOURCE 1 (similarity=0.123):\n[document_id=%s, pages=2-4, chunk_index=3]\nchunk body\n",
		docId,
	)
	assert.Equal(t, expected, out)
}

func TestBuildSortsByAscendingScore(t *testing.T) {
	out := Build([]rag.Candidate{
		candidate(0.9, "worst"),
		candidate(0.1, "best"),
		candidate(0.5, "middle"),
	})

	best := strings.Index(out, "best")
	middle := strings.Index(out, "middle")
	worst := strings.Index(out, "worst")
	require.True(t, best >= 0 && middle >= 0 && worst >= 0)
	assert.Less(t, best, middle)
	assert.Less(t, middle, worst)
}

func TestBuildNeverExceedsSourceCapOrCharBudget(t *testing.T) {
	var candidates []rag.Candidate
	for i := 0; i < 50; i++ {
		candidates = append(candidates, candidate(float64(i)/100, strings.Repeat("x", 500)))
	}

	out := Build(candidates)

	assert.LessOrEqual(t, len(out), MaxContextChars)
	assert.LessOrEqual(t, strings.Count(out, "SOURCE "), MaxSources)
}

func TestBuildStopsAtCharBudgetWithoutTruncatingBlocks(t *testing.T) {
	big := candidate(0.1, strings.Repeat("a", MaxContextChars))
	small := candidate(0.05, "small block")

	out := Build([]rag.Candidate{small, big})

	// The small block fits; the oversized one is dropped whole.
	assert.Contains(t, out, "small block")
	assert.NotContains(t, out, strings.Repeat("a", 100))
}

func TestBuildSkipsMalformedCandidates(t *testing.T) {
	out := Build([]rag.Candidate{
		{Score: 0.1}, // no document id, no content
		candidate(0.2, "valid"),
	})

	assert.Contains(t, out, "valid")
	assert.Equal(t, 1, strings.Count(out, "chunk_index="))
}

func TestBuildIsDeterministic(t *testing.T) {
	candidates := []rag.Candidate{
		candidate(0.3, "one"),
		candidate(0.1, "two"),
		candidate(0.2, "three"),
	}
	assert.Equal(t, Build(candidates), Build(candidates))
}
