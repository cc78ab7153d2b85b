package entity

import (
	"time"

	"github.com/google/uuid"
)

// Workspace groups documents under one owner. Exactly one of OwnerGuestId
// and OwnerUserId is set.
type Workspace struct {
	Id           uuid.UUID
	Name         string
	IsGuest      bool
	OwnerGuestId *uuid.UUID
	OwnerUserId  *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
