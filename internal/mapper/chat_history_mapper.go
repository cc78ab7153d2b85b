package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"docuchat-be/internal/entity"
	"docuchat-be/internal/model"
)

type ChatHistoryMapper struct{}

func NewChatHistoryMapper() *ChatHistoryMapper {
	return &ChatHistoryMapper{}
}

func (m *ChatHistoryMapper) ToEntity(h *model.DocumentChatHistory) *entity.DocumentChatEntry {
	if h == nil {
		return nil
	}

	var citations []entity.ChatCitation
	_ = json.Unmarshal(h.Citations, &citations)

	return &entity.DocumentChatEntry{
		Id:            h.Id,
		DocumentId:    h.DocumentId,
		Query:         h.Query,
		Answer:        h.Answer,
		Citations:     citations,
		Refused:       h.Refused,
		RefusalReason: h.RefusalReason,
		Model:         h.Model,
		TokenUsage:    h.TokenUsage,
		CreatedAt:     h.CreatedAt,
	}
}

func (m *ChatHistoryMapper) ToModel(h *entity.DocumentChatEntry) *model.DocumentChatHistory {
	if h == nil {
		return nil
	}

	citations := h.Citations
	if citations == nil {
		citations = []entity.ChatCitation{}
	}
	data, err := json.Marshal(citations)
	if err != nil {
		data = []byte("[]")
	}

	return &model.DocumentChatHistory{
		Id:            h.Id,
		DocumentId:    h.DocumentId,
		Query:         h.Query,
		Answer:        h.Answer,
		Citations:     datatypes.JSON(data),
		Refused:       h.Refused,
		RefusalReason: h.RefusalReason,
		Model:         h.Model,
		TokenUsage:    h.TokenUsage,
		CreatedAt:     h.CreatedAt,
	}
}

func (m *ChatHistoryMapper) ToEntities(rows []*model.DocumentChatHistory) []*entity.DocumentChatEntry {
	entries := make([]*entity.DocumentChatEntry, len(rows))
	for i, h := range rows {
		entries[i] = m.ToEntity(h)
	}
	return entries
}
