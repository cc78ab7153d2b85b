package contract

import (
	"context"

	"github.com/google/uuid"

	"docuchat-be/internal/entity"
)

// ChatHistoryRepository is append-only: entries are never updated, so
// refusals and answers alike stay auditable.
type ChatHistoryRepository interface {
	Append(ctx context.Context, entry *entity.DocumentChatEntry) error
	FindByDocumentId(ctx context.Context, documentId uuid.UUID, limit, offset int) ([]*entity.DocumentChatEntry, error)
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
}
