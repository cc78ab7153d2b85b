package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"docuchat-be/internal/dto"
	"docuchat-be/internal/entity"
	"docuchat-be/internal/pkg/apperrors"
	"docuchat-be/internal/pkg/logger"
	"docuchat-be/internal/repository/unitofwork"
	"docuchat-be/pkg/llm"
	"docuchat-be/pkg/rag"
	"docuchat-be/pkg/rag/answer"
	"docuchat-be/pkg/rag/contextbuilder"
	"docuchat-be/pkg/rag/prompt"
	"docuchat-be/pkg/rag/retrieval"
)

// NoRelevantContent is the refusal reason when retrieval returns nothing to
// ground on. Distinct from answer.RefusalFallback, which covers unusable
// generation output.
const NoRelevantContent = "No relevant content found"

type IAnswerService interface {
	Answer(ctx context.Context, principal Principal, req *dto.AnswerRequest) (*dto.AnswerResponse, error)
	Retrieve(ctx context.Context, principal Principal, req *dto.RetrieveRequest) ([]*dto.RetrievedChunkResponse, error)
}

type answerService struct {
	uowFactory  unitofwork.RepositoryFactory
	retriever   *retrieval.Retriever
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewAnswerService(
	uowFactory unitofwork.RepositoryFactory,
	retriever *retrieval.Retriever,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
) IAnswerService {
	return &answerService{
		uowFactory:  uowFactory,
		retriever:   retriever,
		llmProvider: llmProvider,
		logger:      log,
	}
}

// Answer runs the grounded QA pipeline end to end: scope checks, retrieval,
// context assembly, generation, validation, history. Every terminal outcome
// except a fabricated citation produces a normal response; refusing is a
// valid answer, not an error.
func (s *answerService) Answer(ctx context.Context, principal Principal, req *dto.AnswerRequest) (*dto.AnswerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	scope, err := s.verifyScope(ctx, uow, principal, req.WorkspaceId, req.DocumentId)
	if err != nil {
		return nil, err
	}

	candidates, err := s.retriever.Retrieve(ctx, scope, req.Query, req.TopK)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		result := &answer.GroundedAnswer{
			Refused:       true,
			RefusalReason: NoRelevantContent,
		}
		if err := s.recordHistory(ctx, uow, req, result); err != nil {
			return nil, err
		}
		return s.toResponse(req, result), nil
	}

	contextBlock := contextbuilder.Build(candidates)
	result, err := s.generate(ctx, req.Query, contextBlock, candidates)
	if err != nil {
		return nil, err
	}

	if err := s.recordHistory(ctx, uow, req, result); err != nil {
		return nil, err
	}
	return s.toResponse(req, result), nil
}

func (s *answerService) Retrieve(ctx context.Context, principal Principal, req *dto.RetrieveRequest) ([]*dto.RetrievedChunkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	scope, err := s.verifyScope(ctx, uow, principal, req.WorkspaceId, req.DocumentId)
	if err != nil {
		return nil, err
	}

	candidates, err := s.retriever.Retrieve(ctx, scope, req.Query, req.TopK)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.RetrievedChunkResponse, 0, len(candidates))
	for _, c := range candidates {
		response = append(response, &dto.RetrievedChunkResponse{
			DocumentId: c.DocumentId,
			ChunkIndex: c.ChunkIndex,
			PageStart:  c.PageStart,
			PageEnd:    c.PageEnd,
			TokenCount: c.TokenCount,
			Content:    c.Content,
			Score:      c.Score,
		})
	}
	return response, nil
}

func (s *answerService) verifyScope(ctx context.Context, uow unitofwork.UnitOfWork, principal Principal, workspaceId uuid.UUID, documentId *uuid.UUID) (retrieval.Scope, error) {
	if _, err := verifyWorkspaceOwnership(ctx, uow, principal, workspaceId); err != nil {
		return retrieval.Scope{}, err
	}

	if documentId != nil {
		document, err := verifyDocumentOwnership(ctx, uow, principal, *documentId)
		if err != nil {
			return retrieval.Scope{}, err
		}
		if document.WorkspaceId != workspaceId {
			return retrieval.Scope{}, &apperrors.NotFoundError{Resource: "document"}
		}
	}

	return retrieval.Scope{WorkspaceId: workspaceId, DocumentId: documentId}, nil
}

// generate calls the model and validates its output. A transport failure
// degrades to a refusal with no generation metadata; only a fabricated
// citation escapes as an error.
func (s *answerService) generate(ctx context.Context, query, contextBlock string, candidates []rag.Candidate) (*answer.GroundedAnswer, error) {
	completion, err := s.llmProvider.Chat(ctx,
		[]llm.Message{
			{Role: "system", Content: prompt.GroundedAnswerSystem},
			{Role: "user", Content: prompt.GroundedAnswerUser(query, contextBlock)},
		},
		llm.WithJSONMode(),
		llm.WithTemperature(0),
	)
	if err != nil {
		s.logger.Error("Answer", "Generation call failed", map[string]interface{}{"error": err.Error()})
		return &answer.GroundedAnswer{
			Refused:       true,
			RefusalReason: answer.RefusalFallback,
		}, nil
	}

	return answer.Validate(completion.Content, candidates, answer.Metadata{
		Model:      completion.Model,
		TokenUsage: completion.TokenUsage,
	})
}

// recordHistory appends the outcome when the question targeted a single
// document. Workspace-wide questions are not recorded: history is keyed by
// document.
func (s *answerService) recordHistory(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.AnswerRequest, result *answer.GroundedAnswer) error {
	if req.DocumentId == nil {
		return nil
	}

	entry := &entity.DocumentChatEntry{
		Id:         uuid.New(),
		DocumentId: *req.DocumentId,
		Query:      req.Query,
		Citations:  toEntityCitations(result.Citations),
		Refused:    result.Refused,
		TokenUsage: result.TokenUsage,
		CreatedAt:  time.Now(),
	}
	if result.Refused {
		reason := result.RefusalReason
		entry.RefusalReason = &reason
	} else {
		answerText := result.Answer
		entry.Answer = &answerText
	}
	if result.Model != "" {
		model := result.Model
		entry.Model = &model
	}

	return uow.ChatHistoryRepository().Append(ctx, entry)
}

func (s *answerService) toResponse(req *dto.AnswerRequest, result *answer.GroundedAnswer) *dto.AnswerResponse {
	response := &dto.AnswerResponse{
		WorkspaceId: req.WorkspaceId,
		Query:       req.Query,
		Citations:   toEntityCitations(result.Citations),
		Refused:     result.Refused,
	}
	if result.Refused {
		reason := result.RefusalReason
		response.RefusalReason = &reason
	} else {
		answerText := result.Answer
		response.Answer = &answerText
	}
	return response
}

func toEntityCitations(citations []answer.Citation) []entity.ChatCitation {
	out := make([]entity.ChatCitation, 0, len(citations))
	for _, c := range citations {
		out = append(out, entity.ChatCitation{
			DocumentId: c.DocumentId,
			ChunkIndex: c.ChunkIndex,
			PageStart:  c.PageStart,
			PageEnd:    c.PageEnd,
			Snippet:    c.Snippet,
		})
	}
	return out
}
