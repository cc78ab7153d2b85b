package entity

import (
	"time"

	"github.com/google/uuid"
)

type SummaryStatus string

const (
	SummaryStatusPending   SummaryStatus = "pending"
	SummaryStatusRunning   SummaryStatus = "running"
	SummaryStatusCompleted SummaryStatus = "completed"
	SummaryStatusFailed    SummaryStatus = "failed"
)

// DocumentSummary is the single summary row per document. Regeneration
// overwrites it in place rather than versioning.
type DocumentSummary struct {
	Id                 uuid.UUID
	DocumentId         uuid.UUID
	Status             SummaryStatus
	BulletPoints       []string
	NarrativeSummary   string
	SuggestedQuestions []string
	ErrorReason        *string
	Model              *string
	TokenUsage         *int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
