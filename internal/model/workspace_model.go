package model

import (
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string     `gorm:"type:varchar(255);not null"`
	IsGuest      bool       `gorm:"not null;default:true"`
	OwnerGuestId *uuid.UUID `gorm:"type:uuid;index"`
	OwnerUserId  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

func (Workspace) TableName() string {
	return "workspaces"
}
