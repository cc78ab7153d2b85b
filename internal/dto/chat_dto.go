package dto

import (
	"time"

	"github.com/google/uuid"

	"docuchat-be/internal/entity"
)

type ChatHistoryEntryResponse struct {
	Id            uuid.UUID             `json:"id"`
	Query         string                `json:"query"`
	Answer        *string               `json:"answer"`
	Citations     []entity.ChatCitation `json:"citations"`
	Refused       bool                  `json:"refused"`
	RefusalReason *string               `json:"refusal_reason"`
	Model         *string               `json:"model"`
	TokenUsage    *int                  `json:"token_usage"`
	CreatedAt     time.Time             `json:"created_at"`
}
