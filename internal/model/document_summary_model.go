package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DocumentSummary struct {
	Id                 uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Status             string         `gorm:"type:varchar(50);not null;default:'pending'"`
	BulletPoints       datatypes.JSON `gorm:"not null;default:'[]'"`
	NarrativeSummary   string         `gorm:"type:text;not null;default:''"`
	SuggestedQuestions datatypes.JSON `gorm:"not null;default:'[]'"`
	ErrorReason        *string        `gorm:"type:text"`
	Model              *string        `gorm:"type:text"`
	TokenUsage         *int
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (DocumentSummary) TableName() string {
	return "document_summaries"
}
