package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatCitation is a validated, enriched citation as stored with history and
// returned to clients.
type ChatCitation struct {
	DocumentId uuid.UUID `json:"document_id"`
	ChunkIndex int       `json:"chunk_index"`
	PageStart  int       `json:"page_start"`
	PageEnd    int       `json:"page_end"`
	Snippet    string    `json:"snippet"`
}

// DocumentChatEntry is one append-only Q&A record against a document.
// Refusals are recorded the same as answers; nothing is ever updated.
type DocumentChatEntry struct {
	Id            uuid.UUID
	DocumentId    uuid.UUID
	Query         string
	Answer        *string
	Citations     []ChatCitation
	Refused       bool
	RefusalReason *string
	Model         *string
	TokenUsage    *int
	CreatedAt     time.Time
}
