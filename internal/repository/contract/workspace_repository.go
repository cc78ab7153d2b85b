package contract

import (
	"context"

	"github.com/google/uuid"

	"docuchat-be/internal/entity"
	"docuchat-be/internal/repository/specification"
)

type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *entity.Workspace) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Workspace, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Workspace, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
