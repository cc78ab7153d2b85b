package dto

import (
	"time"

	"github.com/google/uuid"
)

type GuestSessionResponse struct {
	GuestId   uuid.UUID  `json:"guest_id"`
	SessionId string     `json:"session_id"`
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
}

type RegisterResponse struct {
	Id    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
}

type OAuthCallbackRequest struct {
	Code string `json:"code" validate:"required"`
}
