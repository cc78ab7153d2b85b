package implementation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"docuchat-be/internal/entity"
	"docuchat-be/internal/mapper"
	"docuchat-be/internal/model"
	"docuchat-be/internal/repository/contract"
	"docuchat-be/internal/repository/specification"
)

type ChatHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatHistoryMapper
}

func NewChatHistoryRepository(db *gorm.DB) contract.ChatHistoryRepository {
	return &ChatHistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatHistoryMapper(),
	}
}

func (r *ChatHistoryRepositoryImpl) Append(ctx context.Context, entry *entity.DocumentChatEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatHistoryRepositoryImpl) FindByDocumentId(ctx context.Context, documentId uuid.UUID, limit, offset int) ([]*entity.DocumentChatEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := r.db.WithContext(ctx).
		Where("document_id = ?", documentId).
		Order("created_at ASC")
	query = specification.Pagination{Limit: limit, Offset: offset}.Apply(query)

	var rows []*model.DocumentChatHistory
	err := query.Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(rows), nil
}

func (r *ChatHistoryRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.DocumentChatHistory{}).Error
}
