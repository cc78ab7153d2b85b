package service

import (
	"context"

	"github.com/google/uuid"

	"docuchat-be/internal/dto"
	"docuchat-be/internal/repository/unitofwork"
)

type IChatHistoryService interface {
	List(ctx context.Context, principal Principal, documentId uuid.UUID, limit, offset int) ([]*dto.ChatHistoryEntryResponse, error)
}

type chatHistoryService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewChatHistoryService(uowFactory unitofwork.RepositoryFactory) IChatHistoryService {
	return &chatHistoryService{uowFactory: uowFactory}
}

// List returns the document's Q&A log in chronological order, refusals
// included.
func (s *chatHistoryService) List(ctx context.Context, principal Principal, documentId uuid.UUID, limit, offset int) ([]*dto.ChatHistoryEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := verifyDocumentOwnership(ctx, uow, principal, documentId); err != nil {
		return nil, err
	}

	entries, err := uow.ChatHistoryRepository().FindByDocumentId(ctx, documentId, limit, offset)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ChatHistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, &dto.ChatHistoryEntryResponse{
			Id:            e.Id,
			Query:         e.Query,
			Answer:        e.Answer,
			Citations:     e.Citations,
			Refused:       e.Refused,
			RefusalReason: e.RefusalReason,
			Model:         e.Model,
			TokenUsage:    e.TokenUsage,
			CreatedAt:     e.CreatedAt,
		})
	}
	return response, nil
}
