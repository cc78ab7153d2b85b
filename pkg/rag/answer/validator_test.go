package answer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuchat-be/internal/pkg/apperrors"
	"docuchat-be/pkg/rag"
)

func retrievedSet() (uuid.UUID, []rag.Candidate) {
	docId := uuid.New()
	return docId, []rag.Candidate{
		{DocumentId: docId, ChunkIndex: 0, PageStart: 1, PageEnd: 2, Content: "first chunk body", Score: 0.2},
		{DocumentId: docId, ChunkIndex: 3, PageStart: 5, PageEnd: 6, Content: strings.Repeat("z", 400), Score: 0.4},
	}
}

func TestValidateMalformedJSONBecomesFallbackRefusal(t *testing.T) {
	_, retrieved := retrievedSet()
	usage := 42

	got, err := Validate(`{"answer": "truncated`, retrieved, Metadata{Model: "gpt-4o", TokenUsage: &usage})

	require.NoError(t, err)
	assert.True(t, got.Refused)
	assert.Equal(t, RefusalFallback, got.RefusalReason)
	// Metadata is attached even on the refusal branch.
	assert.Equal(t, "gpt-4o", got.Model)
	assert.Equal(t, &usage, got.TokenUsage)
}

func TestValidateExplicitRefusalPassesReasonThrough(t *testing.T) {
	_, retrieved := retrievedSet()

	got, err := Validate(`{"refused": true, "refusal_reason": "nothing relevant"}`, retrieved, Metadata{})
	require.NoError(t, err)
	assert.True(t, got.Refused)
	assert.Equal(t, "nothing relevant", got.RefusalReason)

	got, err = Validate(`{"refused": true}`, retrieved, Metadata{})
	require.NoError(t, err)
	assert.Equal(t, RefusalFallback, got.RefusalReason)
}

func TestValidateWrongShapeBecomesRefusal(t *testing.T) {
	_, retrieved := retrievedSet()

	cases := []string{
		`{"citations": []}`,                          // answer missing
		`{"answer": 12, "citations": []}`,            // answer wrong type
		`{"answer": "ok"}`,                           // citations missing
		`{"answer": "ok", "citations": "none"}`,      // citations wrong type
		`{"answer": "ok", "citations": [{"page":1}]}`, // citation missing keys
		`{"answer": "ok", "citations": [17]}`,        // citation not an object
	}

	for _, raw := range cases {
		got, err := Validate(raw, retrieved, Metadata{})
		require.NoError(t, err, raw)
		assert.True(t, got.Refused, raw)
		assert.Equal(t, RefusalFallback, got.RefusalReason, raw)
	}
}

func TestValidateFabricatedCitationIsProtocolViolation(t *testing.T) {
	docId, retrieved := retrievedSet()

	raw := fmt.Sprintf(
		`{"answer": "made up", "citations": [{"document_id": %q, "chunk_index": 99}]}`,
		docId,
	)

	got, err := Validate(raw, retrieved, Metadata{})

	assert.Nil(t, got)
	var violation *apperrors.ProtocolViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, 99, violation.ChunkIndex)
}

func TestValidateUnknownDocumentIsProtocolViolation(t *testing.T) {
	_, retrieved := retrievedSet()

	raw := fmt.Sprintf(
		`{"answer": "made up", "citations": [{"document_id": %q, "chunk_index": 0}]}`,
		uuid.New(),
	)

	_, err := Validate(raw, retrieved, Metadata{})

	var violation *apperrors.ProtocolViolationError
	require.ErrorAs(t, err, &violation)
}

func TestValidateSuccessEnrichesCitationsFromGroundTruth(t *testing.T) {
	docId, retrieved := retrievedSet()
	usage := 120

	raw := fmt.Sprintf(
		`{"answer": "grounded answer", "citations": [
			{"document_id": %q, "chunk_index": 0},
			{"document_id": %q, "chunk_index": 3}
		]}`,
		docId, docId,
	)

	got, err := Validate(raw, retrieved, Metadata{Model: "gpt-4o", TokenUsage: &usage})

	require.NoError(t, err)
	assert.False(t, got.Refused)
	assert.Equal(t, "grounded answer", got.Answer)
	require.Len(t, got.Citations, 2)

	assert.Equal(t, docId, got.Citations[0].DocumentId)
	assert.Equal(t, 1, got.Citations[0].PageStart)
	assert.Equal(t, 2, got.Citations[0].PageEnd)
	assert.Equal(t, "first chunk body", got.Citations[0].Snippet)

	// Long content is truncated to the snippet bound.
	assert.Len(t, got.Citations[1].Snippet, SnippetMaxChars)

	assert.Equal(t, "gpt-4o", got.Model)
	assert.Equal(t, &usage, got.TokenUsage)
}

func TestValidateSuccessWithNoCitationsIsAllowed(t *testing.T) {
	_, retrieved := retrievedSet()

	got, err := Validate(`{"answer": "plain", "citations": []}`, retrieved, Metadata{})

	require.NoError(t, err)
	assert.False(t, got.Refused)
	assert.Empty(t, got.Citations)
}
