package retrieval

import (
	"context"

	"github.com/google/uuid"

	"docuchat-be/internal/pkg/apperrors"
	"docuchat-be/internal/pkg/logger"
	"docuchat-be/pkg/embedding"
	"docuchat-be/pkg/rag"
)

// Scope restricts retrieval to a workspace and, optionally, one document.
type Scope struct {
	WorkspaceId uuid.UUID
	DocumentId  *uuid.UUID
}

// ChunkSearcher is the storage capability the retriever needs: counting
// embedded chunks in scope and ranking them by ascending cosine distance.
// The document chunk repository satisfies it.
type ChunkSearcher interface {
	CountEmbedded(ctx context.Context, workspaceId uuid.UUID, documentId *uuid.UUID) (int64, error)
	SearchNearest(ctx context.Context, workspaceId uuid.UUID, documentId *uuid.UUID, vector []float32, limit int) ([]rag.Candidate, error)
}

type Retriever struct {
	embedder embedding.Provider
	searcher ChunkSearcher
	logger   logger.ILogger
}

func NewRetriever(embedder embedding.Provider, searcher ChunkSearcher, log logger.ILogger) *Retriever {
	return &Retriever{
		embedder: embedder,
		searcher: searcher,
		logger:   log,
	}
}

// cutoffForCorpusSize picks the maximum acceptable cosine distance by the
// number of embedded chunks in scope. Small, focused document sets get a
// looser bound to avoid spurious refusals when the corpus itself has few
// strong matches.
func cutoffForCorpusSize(totalChunks int64) float64 {
	if totalChunks <= 10 {
		return 0.92
	}
	if totalChunks <= 50 {
		return 0.88
	}
	return 0.85
}

// Retrieve embeds the query, ranks in-scope chunks by ascending distance,
// limits to topK, then filters that top-k set by the adaptive cutoff. The
// cutoff is applied AFTER the limit: fewer than topK results can come back
// even when chunks beyond the limit would have passed. That order is a
// recall-affecting product decision; do not reorder it.
func (r *Retriever) Retrieve(ctx context.Context, scope Scope, query string, topK int) ([]rag.Candidate, error) {
	if topK <= 0 {
		topK = 5
	}

	vectors, err := r.embedder.EmbedBatch(ctx, []string{query})
	if err != nil {
		return nil, &apperrors.EmbeddingServiceError{Err: err}
	}
	queryVector := vectors[0]

	totalChunks, err := r.searcher.CountEmbedded(ctx, scope.WorkspaceId, scope.DocumentId)
	if err != nil {
		return nil, &apperrors.StorageError{Err: err}
	}

	cutoff := cutoffForCorpusSize(totalChunks)
	r.logger.Info("Retriever", "Cutoff selected", map[string]interface{}{
		"workspace_id": scope.WorkspaceId,
		"total_chunks": totalChunks,
		"cutoff":       cutoff,
	})

	ranked, err := r.searcher.SearchNearest(ctx, scope.WorkspaceId, scope.DocumentId, queryVector, topK)
	if err != nil {
		return nil, &apperrors.StorageError{Err: err}
	}

	filtered := make([]rag.Candidate, 0, len(ranked))
	for _, c := range ranked {
		if c.Score <= cutoff {
			filtered = append(filtered, c)
		}
	}

	r.logger.Info("Retriever", "Retrieval results", map[string]interface{}{
		"requested": topK,
		"returned":  len(filtered),
	})

	return filtered, nil
}
