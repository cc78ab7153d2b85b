package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"docuchat-be/internal/dto"
	"docuchat-be/internal/entity"
	"docuchat-be/internal/pkg/apperrors"
	"docuchat-be/internal/pkg/logger"
	"docuchat-be/internal/pkg/mailer"
	"docuchat-be/internal/repository/specification"
	"docuchat-be/internal/repository/unitofwork"
	"docuchat-be/pkg/chunker"
	"docuchat-be/pkg/events"
	"docuchat-be/pkg/llm"
	pktNats "docuchat-be/pkg/nats"
	"docuchat-be/pkg/rag/prompt"
	"docuchat-be/pkg/rag/summary"
)

type ISummaryService interface {
	Generate(ctx context.Context, principal Principal, documentId uuid.UUID) (*dto.SummaryResponse, error)
	Get(ctx context.Context, principal Principal, documentId uuid.UUID) (*dto.SummaryResponse, error)
}

type summaryService struct {
	uowFactory     unitofwork.RepositoryFactory
	llmProvider    llm.LLMProvider
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewSummaryService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ISummaryService {
	return &summaryService{
		uowFactory:     uowFactory,
		llmProvider:    llmProvider,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// Generate produces (or regenerates) the single summary of a document.
// Validation failures are loud: the run lands in status failed with the
// violation recorded, and the error propagates to the caller. No silent
// partial summaries.
func (s *summaryService) Generate(ctx context.Context, principal Principal, documentId uuid.UUID) (*dto.SummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := verifyDocumentOwnership(ctx, uow, principal, documentId)
	if err != nil {
		return nil, err
	}

	chunkEntities, err := uow.DocumentChunkRepository().FindAll(ctx,
		specification.ByDocument{DocumentId: documentId},
		specification.OrderBy{Field: "chunk_index", Desc: false},
	)
	if err != nil {
		return nil, err
	}
	if len(chunkEntities) == 0 {
		return nil, &apperrors.NotFoundError{Resource: "document content"}
	}

	record := &entity.DocumentSummary{
		Id:         uuid.New(),
		DocumentId: documentId,
		Status:     entity.SummaryStatusRunning,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := uow.DocumentSummaryRepository().Save(ctx, record); err != nil {
		return nil, err
	}

	chunks := make([]chunker.Chunk, 0, len(chunkEntities))
	for _, c := range chunkEntities {
		chunks = append(chunks, chunker.Chunk{
			Index:      c.ChunkIndex,
			PageStart:  c.PageStart,
			PageEnd:    c.PageEnd,
			TokenCount: c.TokenCount,
			Content:    c.Content,
		})
	}
	documentContext := summary.BuildDocumentContext(chunks)

	completion, err := s.llmProvider.Chat(ctx,
		[]llm.Message{
			{Role: "system", Content: prompt.SummarySystem},
			{Role: "user", Content: prompt.SummaryUser(documentContext)},
		},
		llm.WithJSONMode(),
		llm.WithTemperature(0),
	)
	if err != nil {
		return nil, s.fail(ctx, uow, record, document, err)
	}

	validated, err := summary.Validate(completion.Content)
	if err != nil {
		return nil, s.fail(ctx, uow, record, document, err)
	}

	record.Status = entity.SummaryStatusCompleted
	record.BulletPoints = validated.BulletPoints
	record.NarrativeSummary = validated.NarrativeSummary
	record.SuggestedQuestions = validated.SuggestedQuestions
	record.ErrorReason = nil
	record.Model = &completion.Model
	record.TokenUsage = completion.TokenUsage
	record.UpdatedAt = time.Now()

	if err := uow.DocumentSummaryRepository().Save(ctx, record); err != nil {
		return nil, err
	}

	s.notify(ctx, uow, document, record)

	return toSummaryResponse(record), nil
}

func (s *summaryService) Get(ctx context.Context, principal Principal, documentId uuid.UUID) (*dto.SummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := verifyDocumentOwnership(ctx, uow, principal, documentId); err != nil {
		return nil, err
	}

	record, err := uow.DocumentSummaryRepository().FindByDocumentId(ctx, documentId)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, &apperrors.NotFoundError{Resource: "summary"}
	}

	return toSummaryResponse(record), nil
}

// fail records the terminal failed state and passes the original error on.
func (s *summaryService) fail(ctx context.Context, uow unitofwork.UnitOfWork, record *entity.DocumentSummary, document *entity.Document, cause error) error {
	reason := cause.Error()
	record.Status = entity.SummaryStatusFailed
	record.ErrorReason = &reason
	record.UpdatedAt = time.Now()

	if saveErr := uow.DocumentSummaryRepository().Save(ctx, record); saveErr != nil {
		s.logger.Error("Summary", "Failed to record failed status", map[string]interface{}{
			"document_id": record.DocumentId,
			"error":       saveErr.Error(),
		})
	}

	s.notify(ctx, uow, document, record)
	return cause
}

// notify publishes the terminal state to NATS and mails registered owners.
// Both are auxiliary: failures are logged, never propagated.
func (s *summaryService) notify(ctx context.Context, uow unitofwork.UnitOfWork, document *entity.Document, record *entity.DocumentSummary) {
	if s.eventPublisher != nil {
		evt := events.NewSummaryCompleted(document.Id, string(record.Status))
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("Summary", "Failed to publish summary event", map[string]interface{}{
				"document_id": document.Id,
				"error":       err.Error(),
			})
		}
	}

	if s.emailService == nil {
		return
	}

	workspace, err := uow.WorkspaceRepository().FindOne(ctx, specification.ByID{ID: document.WorkspaceId})
	if err != nil || workspace == nil || workspace.OwnerUserId == nil {
		return // Guests have no mailbox.
	}
	user, err := uow.UserRepository().FindById(ctx, *workspace.OwnerUserId)
	if err != nil || user == nil {
		return
	}

	email := user.Email
	filename := document.Filename
	status := record.Status
	var reason string
	if record.ErrorReason != nil {
		reason = *record.ErrorReason
	}

	go func() {
		var mailErr error
		if status == entity.SummaryStatusCompleted {
			mailErr = s.emailService.SendSummaryReady(email, filename)
		} else {
			mailErr = s.emailService.SendSummaryFailed(email, filename, reason)
		}
		if mailErr != nil {
			s.logger.Warn("Summary", "Failed to send summary mail", map[string]interface{}{
				"email": email,
				"error": mailErr.Error(),
			})
		}
	}()
}

func toSummaryResponse(record *entity.DocumentSummary) *dto.SummaryResponse {
	return &dto.SummaryResponse{
		DocumentId:         record.DocumentId,
		Status:             string(record.Status),
		BulletPoints:       record.BulletPoints,
		NarrativeSummary:   record.NarrativeSummary,
		SuggestedQuestions: record.SuggestedQuestions,
		ErrorReason:        record.ErrorReason,
		Model:              record.Model,
		TokenUsage:         record.TokenUsage,
		UpdatedAt:          record.UpdatedAt,
	}
}
