package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"docuchat-be/internal/entity"
	"docuchat-be/internal/mapper"
	"docuchat-be/internal/model"
	"docuchat-be/internal/repository/contract"
)

type DocumentSummaryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentSummaryMapper
}

func NewDocumentSummaryRepository(db *gorm.DB) contract.DocumentSummaryRepository {
	return &DocumentSummaryRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentSummaryMapper(),
	}
}

func (r *DocumentSummaryRepositoryImpl) Save(ctx context.Context, summary *entity.DocumentSummary) error {
	m := r.mapper.ToModel(summary)

	// One summary per document: conflicts on document_id overwrite in place.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "document_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "bullet_points", "narrative_summary", "suggested_questions",
				"error_reason", "model", "token_usage", "updated_at",
			}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}

	*summary = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentSummaryRepositoryImpl) FindByDocumentId(ctx context.Context, documentId uuid.UUID) (*entity.DocumentSummary, error) {
	var m model.DocumentSummary
	if err := r.db.WithContext(ctx).Where("document_id = ?", documentId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DocumentSummaryRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.DocumentSummary{}).Error
}
