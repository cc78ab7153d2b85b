package mapper

import (
	"github.com/pgvector/pgvector-go"

	"docuchat-be/internal/entity"
	"docuchat-be/internal/model"
)

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToEntity(c *model.DocumentChunk) *entity.DocumentChunk {
	if c == nil {
		return nil
	}

	var embedding []float32
	if c.Embedding != nil {
		embedding = c.Embedding.Slice()
	}

	return &entity.DocumentChunk{
		Id:          c.Id,
		DocumentId:  c.DocumentId,
		WorkspaceId: c.WorkspaceId,
		ChunkIndex:  c.ChunkIndex,
		PageStart:   c.PageStart,
		PageEnd:     c.PageEnd,
		TokenCount:  c.TokenCount,
		Content:     c.Content,
		Embedding:   embedding,
		CreatedAt:   c.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToModel(c *entity.DocumentChunk) *model.DocumentChunk {
	if c == nil {
		return nil
	}

	var embedding *pgvector.Vector
	if c.Embedding != nil {
		v := pgvector.NewVector(c.Embedding)
		embedding = &v
	}

	return &model.DocumentChunk{
		Id:          c.Id,
		DocumentId:  c.DocumentId,
		WorkspaceId: c.WorkspaceId,
		ChunkIndex:  c.ChunkIndex,
		PageStart:   c.PageStart,
		PageEnd:     c.PageEnd,
		TokenCount:  c.TokenCount,
		Content:     c.Content,
		Embedding:   embedding,
		CreatedAt:   c.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToEntities(chunks []*model.DocumentChunk) []*entity.DocumentChunk {
	entities := make([]*entity.DocumentChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *DocumentChunkMapper) ToModels(chunks []*entity.DocumentChunk) []*model.DocumentChunk {
	models := make([]*model.DocumentChunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}
