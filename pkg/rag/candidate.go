package rag

import "github.com/google/uuid"

// Candidate is a retrieved chunk plus its vector distance. Ephemeral,
// computed per query; the score is pgvector cosine distance, so lower means
// more relevant.
type Candidate struct {
	DocumentId uuid.UUID
	ChunkIndex int
	PageStart  int
	PageEnd    int
	TokenCount int
	Content    string
	Score      float64
}
