package unitofwork

import (
	"context"

	"docuchat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	GuestRepository() contract.GuestRepository
	UserRepository() contract.UserRepository
	WorkspaceRepository() contract.WorkspaceRepository
	DocumentRepository() contract.DocumentRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
	DocumentSummaryRepository() contract.DocumentSummaryRepository
	ChatHistoryRepository() contract.ChatHistoryRepository
}
