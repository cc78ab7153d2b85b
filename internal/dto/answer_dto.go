package dto

import (
	"github.com/google/uuid"

	"docuchat-be/internal/entity"
)

type AnswerRequest struct {
	WorkspaceId uuid.UUID  `json:"workspace_id" validate:"required"`
	Query       string     `json:"query" validate:"required"`
	TopK        int        `json:"top_k" validate:"omitempty,min=1,max=20"`
	DocumentId  *uuid.UUID `json:"document_id"`
}

type AnswerResponse struct {
	WorkspaceId   uuid.UUID             `json:"workspace_id"`
	Query         string                `json:"query"`
	Answer        *string               `json:"answer"`
	Citations     []entity.ChatCitation `json:"citations"`
	Refused       bool                  `json:"refused"`
	RefusalReason *string               `json:"refusal_reason"`
}

type RetrieveRequest struct {
	WorkspaceId uuid.UUID  `json:"workspace_id" validate:"required"`
	Query       string     `json:"query" validate:"required"`
	TopK        int        `json:"top_k" validate:"omitempty,min=1,max=20"`
	DocumentId  *uuid.UUID `json:"document_id"`
}

type RetrievedChunkResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
	ChunkIndex int       `json:"chunk_index"`
	PageStart  int       `json:"page_start"`
	PageEnd    int       `json:"page_end"`
	TokenCount int       `json:"token_count"`
	Content    string    `json:"content"`
	Score      float64   `json:"score"`
}
