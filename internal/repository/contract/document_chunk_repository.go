package contract

import (
	"context"

	"github.com/google/uuid"

	"docuchat-be/internal/entity"
	"docuchat-be/internal/repository/specification"
	"docuchat-be/pkg/rag"
)

type DocumentChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindUnembedded returns chunks still missing a vector, in chunk order.
	// The embedding pipeline uses it to resume partially embedded documents.
	FindUnembedded(ctx context.Context, documentId uuid.UUID) ([]*entity.DocumentChunk, error)
	UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error

	// CountEmbedded and SearchNearest back the retriever: count of embedded
	// chunks in scope, and cosine-distance ranking within scope.
	CountEmbedded(ctx context.Context, workspaceId uuid.UUID, documentId *uuid.UUID) (int64, error)
	SearchNearest(ctx context.Context, workspaceId uuid.UUID, documentId *uuid.UUID, vector []float32, limit int) ([]rag.Candidate, error)
}
