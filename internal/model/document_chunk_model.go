package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type DocumentChunk struct {
	Id          uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId  uuid.UUID        `gorm:"type:uuid;not null;index"`
	WorkspaceId uuid.UUID        `gorm:"type:uuid;not null;index"`
	ChunkIndex  int              `gorm:"not null"`
	PageStart   int              `gorm:"not null"`
	PageEnd     int              `gorm:"not null"`
	TokenCount  int              `gorm:"not null"`
	Content     string           `gorm:"type:text;not null"`
	Embedding   *pgvector.Vector `gorm:"type:vector(1536)"` // nil until embedded
	CreatedAt   time.Time        `gorm:"autoCreateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
