package dto

import (
	"time"

	"github.com/google/uuid"
)

type SummaryResponse struct {
	DocumentId         uuid.UUID `json:"document_id"`
	Status             string    `json:"status"`
	BulletPoints       []string  `json:"bullet_points"`
	NarrativeSummary   string    `json:"narrative_summary"`
	SuggestedQuestions []string  `json:"suggested_questions"`
	ErrorReason        *string   `json:"error_reason"`
	Model              *string   `json:"model"`
	TokenUsage         *int      `json:"token_usage"`
	UpdatedAt          time.Time `json:"updated_at"`
}
