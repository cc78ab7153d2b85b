package contract

import (
	"context"

	"github.com/google/uuid"

	"docuchat-be/internal/entity"
)

type GuestRepository interface {
	Create(ctx context.Context, guest *entity.Guest) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Guest, error)
	FindBySessionId(ctx context.Context, sessionId string) (*entity.Guest, error)
}
