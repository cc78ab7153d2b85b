package contract

import (
	"context"

	"github.com/google/uuid"

	"docuchat-be/internal/entity"
	"docuchat-be/internal/repository/specification"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)

	// Provider
	SaveUserProvider(ctx context.Context, provider *entity.UserProvider) error
	FindUserProvider(ctx context.Context, providerName, providerUserId string) (*entity.UserProvider, error)
}
