package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuchat-be/internal/entity"
	"docuchat-be/internal/pkg/apperrors"
	"docuchat-be/pkg/llm"
)

const validSummaryJSON = `{
	"bullet_points": ["scope", "methods", "results", "limitations", "conclusion"],
	"narrative_summary": "The report reviews quarterly performance and concludes growth is on track.",
	"suggested_questions": ["What drove growth?", "Which region lagged?", "What are the risks?", "How was data collected?", "What is the outlook?"]
}`

func newSummaryFixture(llmProvider llm.LLMProvider, withChunks bool) (*stubUow, Principal, uuid.UUID, ISummaryService) {
	guestId := uuid.New()
	workspaceId := uuid.New()
	documentId := uuid.New()

	uow := &stubUow{
		workspace: &entity.Workspace{
			Id:           workspaceId,
			IsGuest:      true,
			OwnerGuestId: &guestId,
		},
		document: &entity.Document{
			Id:          documentId,
			WorkspaceId: workspaceId,
			Filename:    "report.pdf",
			Status:      entity.DocumentStatusEmbedded,
		},
	}
	if withChunks {
		uow.chunks = []*entity.DocumentChunk{
			{Id: uuid.New(), DocumentId: documentId, ChunkIndex: 0, PageStart: 1, PageEnd: 1, TokenCount: 90, Content: "introduction"},
			{Id: uuid.New(), DocumentId: documentId, ChunkIndex: 1, PageStart: 2, PageEnd: 3, TokenCount: 110, Content: "findings"},
		}
	}

	svc := NewSummaryService(&stubUowFactory{uow: uow}, llmProvider, nil, nil, noopLogger{})
	return uow, Principal{GuestId: &guestId}, documentId, svc
}

func TestGenerateSummaryPersistsCompletedRecord(t *testing.T) {
	uow, principal, documentId, svc := newSummaryFixture(&fakeLLM{content: validSummaryJSON}, true)

	res, err := svc.Generate(context.Background(), principal, documentId)

	require.NoError(t, err)
	assert.Equal(t, string(entity.SummaryStatusCompleted), res.Status)
	assert.Len(t, res.BulletPoints, 5)
	assert.Len(t, res.SuggestedQuestions, 5)
	assert.NotEmpty(t, res.NarrativeSummary)
	require.NotNil(t, res.TokenUsage)
	assert.Equal(t, 42, *res.TokenUsage)

	// First save marks the run, second one the terminal state.
	require.Len(t, uow.summaries, 2)
	assert.Equal(t, entity.SummaryStatusRunning, uow.summaries[0].Status)
	assert.Equal(t, entity.SummaryStatusCompleted, uow.summaries[1].Status)
	assert.Nil(t, uow.summaries[1].ErrorReason)
}

func TestGenerateSummaryFailsLoudOnSchemaViolation(t *testing.T) {
	uow, principal, documentId, svc := newSummaryFixture(&fakeLLM{content: `{"bullet_points": []}`}, true)

	res, err := svc.Generate(context.Background(), principal, documentId)

	assert.Nil(t, res)
	var violation *apperrors.SummarySchemaViolation
	require.ErrorAs(t, err, &violation)

	require.Len(t, uow.summaries, 2)
	failed := uow.summaries[1]
	assert.Equal(t, entity.SummaryStatusFailed, failed.Status)
	require.NotNil(t, failed.ErrorReason)
	assert.NotEmpty(t, *failed.ErrorReason)
}

func TestGenerateSummaryRequiresExtractedContent(t *testing.T) {
	uow, principal, documentId, svc := newSummaryFixture(&fakeLLM{content: validSummaryJSON}, false)

	res, err := svc.Generate(context.Background(), principal, documentId)

	assert.Nil(t, res)
	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Empty(t, uow.summaries)
}

func TestGetSummaryMissingReadsAsNotFound(t *testing.T) {
	_, principal, documentId, svc := newSummaryFixture(&fakeLLM{content: validSummaryJSON}, true)

	res, err := svc.Get(context.Background(), principal, documentId)

	assert.Nil(t, res)
	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestGetSummaryReturnsLatestRecord(t *testing.T) {
	_, principal, documentId, svc := newSummaryFixture(&fakeLLM{content: validSummaryJSON}, true)

	_, err := svc.Generate(context.Background(), principal, documentId)
	require.NoError(t, err)

	res, err := svc.Get(context.Background(), principal, documentId)
	require.NoError(t, err)
	assert.Equal(t, documentId, res.DocumentId)
	assert.Equal(t, string(entity.SummaryStatusCompleted), res.Status)
}
