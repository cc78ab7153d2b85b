package answer

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"docuchat-be/internal/pkg/apperrors"
	"docuchat-be/pkg/rag"
)

// RefusalFallback is the fixed reason used whenever the generation output is
// unusable: invalid JSON, wrong shape, or a refusal without a stated reason.
const RefusalFallback = "Not found in provided documents"

// SnippetMaxChars bounds citation snippets re-derived from matched chunks.
const SnippetMaxChars = 300

// Citation always carries ground-truth provenance taken from the matched
// retrieved chunk, never values declared by the model.
type Citation struct {
	DocumentId uuid.UUID `json:"document_id"`
	ChunkIndex int       `json:"chunk_index"`
	PageStart  int       `json:"page_start"`
	PageEnd    int       `json:"page_end"`
	Snippet    string    `json:"snippet"`
}

// Metadata describes the generation step that produced the raw output.
type Metadata struct {
	Model      string
	TokenUsage *int
}

// GroundedAnswer is the validated terminal outcome of the answer pipeline:
// either a cited answer or a refusal, never both.
type GroundedAnswer struct {
	Answer        string
	Citations     []Citation
	Refused       bool
	RefusalReason string
	Model         string
	TokenUsage    *int
}

// rawOutput mirrors the generation JSON contract. Answer and Citations stay
// raw so their types can be checked before any field is trusted.
type rawOutput struct {
	Refused       bool            `json:"refused"`
	RefusalReason string          `json:"refusal_reason"`
	Answer        json.RawMessage `json:"answer"`
	Citations     json.RawMessage `json:"citations"`
}

type rawCitation struct {
	DocumentId *string  `json:"document_id"`
	ChunkIndex *float64 `json:"chunk_index"`
}

// Validate parses and cross-checks the raw generation output against the
// retrieved candidate set. Model misbehavior degrades to a refusal; a
// citation whose key is absent from the retrieved set is a fabrication and
// returns a ProtocolViolationError instead. Metadata is attached to the
// result on every branch.
func Validate(raw string, retrieved []rag.Candidate, meta Metadata) (*GroundedAnswer, error) {
	refusal := func(reason string) *GroundedAnswer {
		return &GroundedAnswer{
			Refused:       true,
			RefusalReason: reason,
			Model:         meta.Model,
			TokenUsage:    meta.TokenUsage,
		}
	}

	var out rawOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return refusal(RefusalFallback), nil
	}

	// Explicit refusal passes through its stated reason.
	if out.Refused {
		reason := out.RefusalReason
		if reason == "" {
			reason = RefusalFallback
		}
		return refusal(reason), nil
	}

	// JSON null decodes without error, so it is rejected explicitly.
	var answerText string
	if isNullOrMissing(out.Answer) || json.Unmarshal(out.Answer, &answerText) != nil {
		return refusal(RefusalFallback), nil
	}

	var citations []rawCitation
	if isNullOrMissing(out.Citations) || json.Unmarshal(out.Citations, &citations) != nil {
		return refusal(RefusalFallback), nil
	}

	for _, c := range citations {
		if c.DocumentId == nil || c.ChunkIndex == nil {
			return refusal(RefusalFallback), nil
		}
	}

	// Grounding check: every declared key must exist in the retrieved set.
	lookup := make(map[string]rag.Candidate, len(retrieved))
	for _, cand := range retrieved {
		lookup[citationKey(cand.DocumentId.String(), cand.ChunkIndex)] = cand
	}

	result := &GroundedAnswer{
		Answer:     answerText,
		Citations:  make([]Citation, 0, len(citations)),
		Model:      meta.Model,
		TokenUsage: meta.TokenUsage,
	}

	for _, c := range citations {
		chunkIndex := int(*c.ChunkIndex)
		source, ok := lookup[citationKey(*c.DocumentId, chunkIndex)]
		if !ok {
			return nil, &apperrors.ProtocolViolationError{
				DocumentId: *c.DocumentId,
				ChunkIndex: chunkIndex,
			}
		}

		// Enrichment: model-declared paging is replaced with ground truth.
		result.Citations = append(result.Citations, Citation{
			DocumentId: source.DocumentId,
			ChunkIndex: source.ChunkIndex,
			PageStart:  source.PageStart,
			PageEnd:    source.PageEnd,
			Snippet:    truncateSnippet(source.Content),
		})
	}

	return result, nil
}

func isNullOrMissing(raw json.RawMessage) bool {
	return raw == nil || string(raw) == "null"
}

func citationKey(documentId string, chunkIndex int) string {
	return fmt.Sprintf("%s:%d", documentId, chunkIndex)
}

func truncateSnippet(content string) string {
	runes := []rune(content)
	if len(runes) <= SnippetMaxChars {
		return content
	}
	return string(runes[:SnippetMaxChars])
}
