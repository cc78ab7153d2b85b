package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is one token-bounded slice of an extracted document.
// Embedding is nil until the embedding pipeline processes the chunk; the
// pipeline resumes by selecting chunks where it is still nil.
type DocumentChunk struct {
	Id          uuid.UUID
	DocumentId  uuid.UUID
	WorkspaceId uuid.UUID
	ChunkIndex  int
	PageStart   int
	PageEnd     int
	TokenCount  int
	Content     string
	Embedding   []float32
	CreatedAt   time.Time
}
