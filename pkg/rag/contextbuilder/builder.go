package contextbuilder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"docuchat-be/pkg/rag"
)

const (
	// MaxSources caps how many candidate blocks end up in the prompt.
	MaxSources = 8
	// MaxContextChars bounds the total serialized context. Blocks are
	// atomic: one that would overflow the remaining budget is dropped and
	// assembly stops.
	MaxContextChars = 12000
)

// Build serializes ranked candidates into the grounded context block handed
// to the generation step. Fully deterministic for an identical candidate
// list; returns "" when there is nothing to ground on.
func Build(candidates []rag.Candidate) string {
	if len(candidates) == 0 {
		return ""
	}

	// Defensive re-sort, idempotent when the retriever already ranked them.
	ordered := append([]rag.Candidate(nil), candidates...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score < ordered[j].Score
	})

	var blocks []string
	totalLen := 0
	used := 0

	for i, c := range ordered {
		if used >= MaxSources {
			break
		}

		// Skip malformed candidates without aborting the whole assembly.
		if c.DocumentId == uuid.Nil || c.Content == "" {
			continue
		}

		block := fmt.Sprintf(
			"SOURCE %d (similarity=%.3f):\n[document_id=%s, pages=%d-%d, chunk_index=%d]\n%s\n",
			i+1, c.Score, c.DocumentId, c.PageStart, c.PageEnd, c.ChunkIndex, c.Content,
		)

		if totalLen+len(block) > MaxContextChars {
			break
		}

		blocks = append(blocks, block)
		totalLen += len(block)
		used++
	}

	// Each block already ends with "\n", so joining with "\n" leaves a
	// blank line between sources.
	return strings.Join(blocks, "\n")
}
