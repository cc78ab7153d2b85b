package summary

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"docuchat-be/internal/pkg/apperrors"
)

const (
	MinBullets = 5
	MaxBullets = 10

	MinQuestions = 5
	MaxQuestions = 8

	MaxNarrativeChars = 4000
)

// Summary is the validated whole-document summarization output.
type Summary struct {
	BulletPoints       []string
	NarrativeSummary   string
	SuggestedQuestions []string
}

// rawSummary mirrors the summary JSON contract. Fields stay raw so type
// violations are distinguishable from absent keys.
type rawSummary struct {
	BulletPoints       json.RawMessage `json:"bullet_points"`
	NarrativeSummary   json.RawMessage `json:"narrative_summary"`
	SuggestedQuestions json.RawMessage `json:"suggested_questions"`
}

// Validate enforces the strict summary contract. Unlike the answer
// validator it raises on any violation: the caller records the error text as
// a terminal failed status.
func Validate(raw string) (*Summary, error) {
	var parsed rawSummary
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, &apperrors.SummarySchemaViolation{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	if parsed.BulletPoints == nil {
		return nil, &apperrors.SummarySchemaViolation{Reason: "missing field: bullet_points"}
	}
	if parsed.NarrativeSummary == nil {
		return nil, &apperrors.SummarySchemaViolation{Reason: "missing field: narrative_summary"}
	}
	if parsed.SuggestedQuestions == nil {
		return nil, &apperrors.SummarySchemaViolation{Reason: "missing field: suggested_questions"}
	}

	bullets, ok := decodeStringList(parsed.BulletPoints)
	if !ok {
		return nil, &apperrors.SummarySchemaViolation{Reason: "bullet_points must be a list of strings"}
	}

	questions, ok := decodeStringList(parsed.SuggestedQuestions)
	if !ok {
		return nil, &apperrors.SummarySchemaViolation{Reason: "suggested_questions must be a list of strings"}
	}

	var narrative string
	if err := json.Unmarshal(parsed.NarrativeSummary, &narrative); err != nil || strings.TrimSpace(narrative) == "" {
		return nil, &apperrors.SummarySchemaViolation{Reason: "narrative_summary must be a non-empty string"}
	}

	if len(bullets) < MinBullets || len(bullets) > MaxBullets {
		return nil, &apperrors.SummarySchemaViolation{
			Reason: fmt.Sprintf("invalid number of bullet_points: %d (want %d-%d)", len(bullets), MinBullets, MaxBullets),
		}
	}

	if len(questions) < MinQuestions || len(questions) > MaxQuestions {
		return nil, &apperrors.SummarySchemaViolation{
			Reason: fmt.Sprintf("invalid number of suggested_questions: %d (want %d-%d)", len(questions), MinQuestions, MaxQuestions),
		}
	}

	if narrativeLen := utf8.RuneCountInString(narrative); narrativeLen > MaxNarrativeChars {
		return nil, &apperrors.SummarySchemaViolation{
			Reason: fmt.Sprintf("narrative_summary too long: %d chars", narrativeLen),
		}
	}

	result := &Summary{
		BulletPoints:       make([]string, len(bullets)),
		NarrativeSummary:   strings.TrimSpace(narrative),
		SuggestedQuestions: make([]string, len(questions)),
	}
	for i, b := range bullets {
		result.BulletPoints[i] = strings.TrimSpace(b)
	}
	for i, q := range questions {
		result.SuggestedQuestions[i] = strings.TrimSpace(q)
	}

	return result, nil
}

// decodeStringList decodes a JSON array whose every element is a string.
// JSON null elements decode into []string without error, so each element is
// checked individually.
func decodeStringList(raw json.RawMessage) ([]string, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}

	out := make([]string, len(items))
	for i, item := range items {
		if string(item) == "null" {
			return nil, false
		}
		if err := json.Unmarshal(item, &out[i]); err != nil {
			return nil, false
		}
	}
	return out, true
}
