package mapper

import (
	"time"

	"docuchat-be/internal/entity"
	"docuchat-be/internal/model"
)

type WorkspaceMapper struct{}

func NewWorkspaceMapper() *WorkspaceMapper {
	return &WorkspaceMapper{}
}

func (m *WorkspaceMapper) ToEntity(w *model.Workspace) *entity.Workspace {
	if w == nil {
		return nil
	}

	var updatedAt *time.Time
	if !w.UpdatedAt.IsZero() {
		t := w.UpdatedAt
		updatedAt = &t
	}

	return &entity.Workspace{
		Id:           w.Id,
		Name:         w.Name,
		IsGuest:      w.IsGuest,
		OwnerGuestId: w.OwnerGuestId,
		OwnerUserId:  w.OwnerUserId,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *WorkspaceMapper) ToModel(w *entity.Workspace) *model.Workspace {
	if w == nil {
		return nil
	}

	var updatedAt time.Time
	if w.UpdatedAt != nil {
		updatedAt = *w.UpdatedAt
	}

	return &model.Workspace{
		Id:           w.Id,
		Name:         w.Name,
		IsGuest:      w.IsGuest,
		OwnerGuestId: w.OwnerGuestId,
		OwnerUserId:  w.OwnerUserId,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *WorkspaceMapper) ToEntities(workspaces []*model.Workspace) []*entity.Workspace {
	entities := make([]*entity.Workspace, len(workspaces))
	for i, w := range workspaces {
		entities[i] = m.ToEntity(w)
	}
	return entities
}
