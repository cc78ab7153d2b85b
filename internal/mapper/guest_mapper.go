package mapper

import (
	"docuchat-be/internal/entity"
	"docuchat-be/internal/model"
)

type GuestMapper struct{}

func NewGuestMapper() *GuestMapper {
	return &GuestMapper{}
}

func (m *GuestMapper) ToEntity(g *model.Guest) *entity.Guest {
	if g == nil {
		return nil
	}
	return &entity.Guest{
		Id:        g.Id,
		SessionId: g.SessionId,
		ExpiresAt: g.ExpiresAt,
		CreatedAt: g.CreatedAt,
	}
}

func (m *GuestMapper) ToModel(g *entity.Guest) *model.Guest {
	if g == nil {
		return nil
	}
	return &model.Guest{
		Id:        g.Id,
		SessionId: g.SessionId,
		ExpiresAt: g.ExpiresAt,
		CreatedAt: g.CreatedAt,
	}
}
