package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"docuchat-be/internal/entity"
	"docuchat-be/internal/model"
)

type DocumentSummaryMapper struct{}

func NewDocumentSummaryMapper() *DocumentSummaryMapper {
	return &DocumentSummaryMapper{}
}

func (m *DocumentSummaryMapper) ToEntity(s *model.DocumentSummary) *entity.DocumentSummary {
	if s == nil {
		return nil
	}

	var bullets []string
	_ = json.Unmarshal(s.BulletPoints, &bullets)
	var questions []string
	_ = json.Unmarshal(s.SuggestedQuestions, &questions)

	return &entity.DocumentSummary{
		Id:                 s.Id,
		DocumentId:         s.DocumentId,
		Status:             entity.SummaryStatus(s.Status),
		BulletPoints:       bullets,
		NarrativeSummary:   s.NarrativeSummary,
		SuggestedQuestions: questions,
		ErrorReason:        s.ErrorReason,
		Model:              s.Model,
		TokenUsage:         s.TokenUsage,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func (m *DocumentSummaryMapper) ToModel(s *entity.DocumentSummary) *model.DocumentSummary {
	if s == nil {
		return nil
	}

	return &model.DocumentSummary{
		Id:                 s.Id,
		DocumentId:         s.DocumentId,
		Status:             string(s.Status),
		BulletPoints:       marshalJSONList(s.BulletPoints),
		NarrativeSummary:   s.NarrativeSummary,
		SuggestedQuestions: marshalJSONList(s.SuggestedQuestions),
		ErrorReason:        s.ErrorReason,
		Model:              s.Model,
		TokenUsage:         s.TokenUsage,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// marshalJSONList never produces JSON null: an empty list stays "[]" so the
// column constraint holds.
func marshalJSONList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}
