package entity

import (
	"time"

	"github.com/google/uuid"
)

// Guest is an anonymous identity bound to a browser session. Guests can use
// the full pipeline under stricter quotas until they register.
type Guest struct {
	Id        uuid.UUID
	SessionId string
	CreatedAt time.Time
	ExpiresAt *time.Time
}
