package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceId uuid.UUID `gorm:"type:uuid;not null;index"`
	Filename    string    `gorm:"type:varchar(512);not null"`
	FileType    string    `gorm:"type:varchar(50);not null"`
	FileSize    int64     `gorm:"not null"`
	StoragePath string    `gorm:"type:text;not null"`
	Status      string    `gorm:"type:varchar(50);not null;default:'uploaded'"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}
