package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. PasswordHash is nil for accounts created
// through an OAuth provider only.
type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash *string
	FullName     string
	AvatarURL    *string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// UserProvider links a user to an external identity provider account.
type UserProvider struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	ProviderName   string
	ProviderUserId string
	AvatarURL      string
	CreatedAt      time.Time
}
