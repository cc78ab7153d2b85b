package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DocumentChatHistory struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Query         string         `gorm:"type:text;not null"`
	Answer        *string        `gorm:"type:text"`
	Citations     datatypes.JSON `gorm:"not null;default:'[]'"`
	Refused       bool           `gorm:"not null;default:false"`
	RefusalReason *string        `gorm:"type:text"`
	Model         *string        `gorm:"type:text"`
	TokenUsage    *int
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (DocumentChatHistory) TableName() string {
	return "document_chat_history"
}
