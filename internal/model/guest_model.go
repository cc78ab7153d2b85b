package model

import (
	"time"

	"github.com/google/uuid"
)

type Guest struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	ExpiresAt *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Guest) TableName() string {
	return "guests"
}
