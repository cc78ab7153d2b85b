package contract

import (
	"context"

	"github.com/google/uuid"

	"docuchat-be/internal/entity"
)

type DocumentSummaryRepository interface {
	// Save creates or overwrites the single summary row of a document.
	Save(ctx context.Context, summary *entity.DocumentSummary) error
	FindByDocumentId(ctx context.Context, documentId uuid.UUID) (*entity.DocumentSummary, error)
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
}
