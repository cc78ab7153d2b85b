package implementation

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"docuchat-be/internal/entity"
	"docuchat-be/internal/mapper"
	"docuchat-be/internal/model"
	"docuchat-be/internal/repository/contract"
	"docuchat-be/internal/repository/specification"
	"docuchat-be/pkg/rag"
)

type DocumentChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentChunkMapper
}

func NewDocumentChunkRepository(db *gorm.DB) contract.DocumentChunkRepository {
	return &DocumentChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentChunkMapper(),
	}
}

func (r *DocumentChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := r.mapper.ToModels(chunks)
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *DocumentChunkRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.DocumentChunk{}).Error
}

func (r *DocumentChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error) {
	var models []*model.DocumentChunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.DocumentChunk{}).Count(&count).Error
	return count, err
}

func (r *DocumentChunkRepositoryImpl) FindUnembedded(ctx context.Context, documentId uuid.UUID) ([]*entity.DocumentChunk, error) {
	var models []*model.DocumentChunk
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentId).
		Where("embedding IS NULL").
		Order("chunk_index ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentChunkRepositoryImpl) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	return r.db.WithContext(ctx).
		Model(&model.DocumentChunk{}).
		Where("id = ?", id).
		Update("embedding", pgvector.NewVector(embedding)).Error
}

func (r *DocumentChunkRepositoryImpl) CountEmbedded(ctx context.Context, workspaceId uuid.UUID, documentId *uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&model.DocumentChunk{}).
		Where("workspace_id = ?", workspaceId)
	query = specification.Embedded{}.Apply(query)
	if documentId != nil {
		query = query.Where("document_id = ?", *documentId)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

// SearchNearest ranks embedded chunks in scope by cosine distance to the
// query vector. Score is the raw distance: lower is better.
func (r *DocumentChunkRepositoryImpl) SearchNearest(ctx context.Context, workspaceId uuid.UUID, documentId *uuid.UUID, vector []float32, limit int) ([]rag.Candidate, error) {
	type row struct {
		model.DocumentChunk
		Score float64
	}
	var rows []row

	queryVector := pgvector.NewVector(vector)

	query := r.db.WithContext(ctx).
		Table("document_chunks").
		Select("document_chunks.*, (embedding <=> ?) AS score", queryVector).
		Where("workspace_id = ?", workspaceId)
	query = specification.Embedded{}.Apply(query)
	if documentId != nil {
		query = query.Where("document_id = ?", *documentId)
	}

	err := query.
		Order("score ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	candidates := make([]rag.Candidate, len(rows))
	for i, res := range rows {
		candidates[i] = rag.Candidate{
			DocumentId: res.DocumentId,
			ChunkIndex: res.ChunkIndex,
			PageStart:  res.PageStart,
			PageEnd:    res.PageEnd,
			TokenCount: res.TokenCount,
			Content:    res.Content,
			Score:      res.Score,
		}
	}
	return candidates, nil
}
