package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"docuchat-be/internal/entity"
	"docuchat-be/internal/mapper"
	"docuchat-be/internal/model"
	"docuchat-be/internal/repository/contract"
)

type GuestRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GuestMapper
}

func NewGuestRepository(db *gorm.DB) contract.GuestRepository {
	return &GuestRepositoryImpl{
		db:     db,
		mapper: mapper.NewGuestMapper(),
	}
}

func (r *GuestRepositoryImpl) Create(ctx context.Context, guest *entity.Guest) error {
	m := r.mapper.ToModel(guest)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*guest = *r.mapper.ToEntity(m)
	return nil
}

func (r *GuestRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Guest, error) {
	var m model.Guest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GuestRepositoryImpl) FindBySessionId(ctx context.Context, sessionId string) (*entity.Guest, error) {
	var m model.Guest
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
