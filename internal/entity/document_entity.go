package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentStatus string

const (
	DocumentStatusUploaded        DocumentStatus = "uploaded"
	DocumentStatusEmbedding       DocumentStatus = "embedding"
	DocumentStatusEmbedded        DocumentStatus = "embedded"
	DocumentStatusFailedEmbedding DocumentStatus = "failed_embedding"
)

type Document struct {
	Id          uuid.UUID
	WorkspaceId uuid.UUID
	Filename    string
	FileType    string
	FileSize    int64
	StoragePath string
	Status      DocumentStatus
	CreatedAt   time.Time
}
