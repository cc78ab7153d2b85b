package summary

import (
	"fmt"
	"strings"

	"docuchat-be/pkg/chunker"
)

// MaxDocumentContextChars bounds the concatenated chunk content sent to the
// model for summarization.
const MaxDocumentContextChars = 16000

// BuildDocumentContext concatenates chunks, in the order given, into a
// bounded context window. Chunks are whole-or-nothing: assembly stops at the
// first chunk whose block would exceed the budget.
func BuildDocumentContext(chunks []chunker.Chunk) string {
	var blocks []string
	totalLen := 0

	for _, c := range chunks {
		block := fmt.Sprintf(
			"[pages %d-%d, chunk %d]\n%s\n",
			c.PageStart, c.PageEnd, c.Index, c.Content,
		)
		if totalLen+len(block) > MaxDocumentContextChars {
			break
		}
		blocks = append(blocks, block)
		totalLen += len(block)
	}

	return strings.Join(blocks, "\n")
}
