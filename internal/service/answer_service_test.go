package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuchat-be/internal/dto"
	"docuchat-be/internal/entity"
	"docuchat-be/internal/pkg/apperrors"
	"docuchat-be/pkg/llm"
	"docuchat-be/pkg/rag"
	"docuchat-be/pkg/rag/answer"
	"docuchat-be/pkg/rag/retrieval"
)

type fakeEmbedder struct{}

func (fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.2, 0.3}
	}
	return out, nil
}
func (fakeEmbedder) ModelName() string { return "fake-embed" }

type fakeSearcher struct {
	candidates []rag.Candidate
}

func (s *fakeSearcher) CountEmbedded(_ context.Context, _ uuid.UUID, _ *uuid.UUID) (int64, error) {
	return int64(len(s.candidates)), nil
}
func (s *fakeSearcher) SearchNearest(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _ []float32, limit int) ([]rag.Candidate, error) {
	if len(s.candidates) > limit {
		return s.candidates[:limit], nil
	}
	return s.candidates, nil
}

type fakeLLM struct {
	content string
	err     error
}

func (f *fakeLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (*llm.Completion, error) {
	if f.err != nil {
		return nil, f.err
	}
	usage := 42
	return &llm.Completion{Content: f.content, Model: "fake-chat", TokenUsage: &usage}, nil
}

func newAnswerFixture(candidates []rag.Candidate, llmProvider llm.LLMProvider) (*stubUow, Principal, *dto.AnswerRequest, IAnswerService) {
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

	retriever := retrieval.NewRetriever(fakeEmbedder{}, &fakeSearcher{candidates: candidates}, noopLogger{})
	svc := NewAnswerService(&stubUowFactory{uow: uow}, retriever, llmProvider, noopLogger{})

	principal := Principal{GuestId: &guestId}
	req := &dto.AnswerRequest{
		WorkspaceId: workspaceId,
		DocumentId:  &documentId,
		Query:       "what does the report conclude?",
	}
	return uow, principal, req, svc
}

func TestAnswerRefusesWhenNothingRetrieved(t *testing.T) {
	uow, principal, req, svc := newAnswerFixture(nil, &fakeLLM{content: "unused"})

	res, err := svc.Answer(context.Background(), principal, req)

	require.NoError(t, err)
	assert.True(t, res.Refused)
	require.NotNil(t, res.RefusalReason)
	assert.Equal(t, NoRelevantContent, *res.RefusalReason)
	assert.Nil(t, res.Answer)

	require.Len(t, uow.history, 1)
	assert.True(t, uow.history[0].Refused)
	assert.Equal(t, req.Query, uow.history[0].Query)
}

func TestAnswerEnrichesCitationsFromRetrievedChunks(t *testing.T) {
	docId := uuid.New()
	candidates := []rag.Candidate{
		{DocumentId: docId, ChunkIndex: 3, PageStart: 2, PageEnd: 4, TokenCount: 120, Content: "quarterly revenue grew 12%", Score: 0.31},
	}
	raw := fmt.Sprintf(
		`{"refused": false, "answer": "Revenue grew 12%% over the quarter.", "citations": [{"document_id": "%s", "chunk_index": 3, "page_start": 99, "page_end": 99}]}`,
		docId,
	)
	uow, principal, req, svc := newAnswerFixture(candidates, &fakeLLM{content: raw})

	res, err := svc.Answer(context.Background(), principal, req)

	require.NoError(t, err)
	assert.False(t, res.Refused)
	require.NotNil(t, res.Answer)
	assert.Equal(t, "Revenue grew 12% over the quarter.", *res.Answer)

	require.Len(t, res.Citations, 1)
	// Paging and snippet come from the retrieved chunk, not the model.
	assert.Equal(t, 2, res.Citations[0].PageStart)
	assert.Equal(t, 4, res.Citations[0].PageEnd)
	assert.Equal(t, "quarterly revenue grew 12%", res.Citations[0].Snippet)

	require.Len(t, uow.history, 1)
	assert.False(t, uow.history[0].Refused)
	require.NotNil(t, uow.history[0].TokenUsage)
	assert.Equal(t, 42, *uow.history[0].TokenUsage)
}

func TestAnswerRejectsFabricatedCitation(t *testing.T) {
	docId := uuid.New()
	candidates := []rag.Candidate{
		{DocumentId: docId, ChunkIndex: 0, Content: "intro", Score: 0.2},
	}
	raw := fmt.Sprintf(
		`{"refused": false, "answer": "made up", "citations": [{"document_id": "%s", "chunk_index": 7}]}`,
		docId,
	)
	_, principal, req, svc := newAnswerFixture(candidates, &fakeLLM{content: raw})

	res, err := svc.Answer(context.Background(), principal, req)

	assert.Nil(t, res)
	var violation *apperrors.ProtocolViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, 7, violation.ChunkIndex)
}

func TestAnswerDegradesToRefusalOnGenerationFailure(t *testing.T) {
	docId := uuid.New()
	candidates := []rag.Candidate{
		{DocumentId: docId, ChunkIndex: 0, Content: "intro", Score: 0.2},
	}
	_, principal, req, svc := newAnswerFixture(candidates, &fakeLLM{err: errors.New("upstream timeout")})

	res, err := svc.Answer(context.Background(), principal, req)

	require.NoError(t, err)
	assert.True(t, res.Refused)
	require.NotNil(t, res.RefusalReason)
	assert.Equal(t, answer.RefusalFallback, *res.RefusalReason)
}

func TestAnswerSkipsHistoryForWorkspaceWideQuestions(t *testing.T) {
	uow, principal, req, svc := newAnswerFixture(nil, &fakeLLM{content: "unused"})
	req.DocumentId = nil

	res, err := svc.Answer(context.Background(), principal, req)

	require.NoError(t, err)
	assert.True(t, res.Refused)
	assert.Empty(t, uow.history)
}

func TestAnswerHidesForeignWorkspaces(t *testing.T) {
	uow, _, req, svc := newAnswerFixture(nil, &fakeLLM{content: "unused"})

	intruder := uuid.New()
	principal := Principal{GuestId: &intruder}
	res, err := svc.Answer(context.Background(), principal, req)

	assert.Nil(t, res)
	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Empty(t, uow.history)
}

func TestRetrieveMapsCandidates(t *testing.T) {
	docId := uuid.New()
	candidates := []rag.Candidate{
		{DocumentId: docId, ChunkIndex: 1, PageStart: 1, PageEnd: 2, TokenCount: 80, Content: "methods", Score: 0.4},
	}
	_, principal, req, svc := newAnswerFixture(candidates, &fakeLLM{content: "unused"})

	res, err := svc.Retrieve(context.Background(), principal, &dto.RetrieveRequest{
		WorkspaceId: req.WorkspaceId,
		DocumentId:  req.DocumentId,
		Query:       req.Query,
	})

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, docId, res[0].DocumentId)
	assert.Equal(t, 1, res[0].ChunkIndex)
	assert.Equal(t, 0.4, res[0].Score)
}
