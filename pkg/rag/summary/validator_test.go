package summary

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuchat-be/internal/pkg/apperrors"
)

func validPayload() map[string]any {
	return map[string]any{
		"bullet_points":       []string{"one", "two", "three", "four", "five"},
		"narrative_summary":   "  A short narrative. ",
		"suggested_questions": []string{"q1", "q2", "q3", "q4", "q5"},
	}
}

func marshal(t *testing.T, payload map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return string(raw)
}

func assertViolation(t *testing.T, err error, fragment string) {
	t.Helper()
	var violation *apperrors.SummarySchemaViolation
	require.ErrorAs(t, err, &violation)
	assert.Contains(t, violation.Reason, fragment)
}

func TestValidateAcceptsWellFormedSummary(t *testing.T) {
	got, err := Validate(marshal(t, validPayload()))

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three", "four", "five"}, got.BulletPoints)
	assert.Equal(t, "A short narrative.", got.NarrativeSummary)
	assert.Len(t, got.SuggestedQuestions, 5)
}

func TestValidateRejectsMissingFields(t *testing.T) {
	for _, field := range []string{"bullet_points", "narrative_summary", "suggested_questions"} {
		payload := validPayload()
		delete(payload, field)

		_, err := Validate(marshal(t, payload))
		assertViolation(t, err, field)
	}
}

func TestValidateRejectsTooFewBullets(t *testing.T) {
	payload := validPayload()
	payload["bullet_points"] = []string{"a", "b", "c"}

	_, err := Validate(marshal(t, payload))
	assertViolation(t, err, "bullet_points")
}

func TestValidateRejectsTooManyQuestions(t *testing.T) {
	payload := validPayload()
	payload["suggested_questions"] = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}

	_, err := Validate(marshal(t, payload))
	assertViolation(t, err, "suggested_questions")
}

func TestValidateRejectsWrongTypes(t *testing.T) {
	payload := validPayload()
	payload["bullet_points"] = []any{"a", 2, "c", "d", "e"}
	_, err := Validate(marshal(t, payload))
	assertViolation(t, err, "bullet_points")

	payload = validPayload()
	payload["narrative_summary"] = 42
	_, err = Validate(marshal(t, payload))
	assertViolation(t, err, "narrative_summary")
}

func TestValidateRejectsNullListItems(t *testing.T) {
	payload := validPayload()
	payload["bullet_points"] = []any{"a", "b", "c", "d", nil}
	_, err := Validate(marshal(t, payload))
	assertViolation(t, err, "bullet_points")

	payload = validPayload()
	payload["suggested_questions"] = []any{nil, "q2", "q3", "q4", "q5"}
	_, err = Validate(marshal(t, payload))
	assertViolation(t, err, "suggested_questions")
}

func TestValidateRejectsEmptyNarrative(t *testing.T) {
	payload := validPayload()
	payload["narrative_summary"] = "   "

	_, err := Validate(marshal(t, payload))
	assertViolation(t, err, "non-empty")
}

func TestValidateRejectsOverlongNarrative(t *testing.T) {
	payload := validPayload()
	payload["narrative_summary"] = strings.Repeat("n", MaxNarrativeChars+1)

	_, err := Validate(marshal(t, payload))
	assertViolation(t, err, "too long")
}

func TestValidateCountsNarrativeLengthInRunes(t *testing.T) {
	payload := validPayload()
	// Two bytes per rune; well under the limit in characters.
	payload["narrative_summary"] = strings.Repeat("é", MaxNarrativeChars-100)

	_, err := Validate(marshal(t, payload))
	assert.NoError(t, err)

	payload["narrative_summary"] = strings.Repeat("é", MaxNarrativeChars+1)
	_, err = Validate(marshal(t, payload))
	assertViolation(t, err, "too long")
}

func TestValidateRejectsInvalidJSON(t *testing.T) {
	_, err := Validate(`{"bullet_points": [`)
	assertViolation(t, err, "invalid JSON")
}

func TestValidateUpperBoundsAreInclusive(t *testing.T) {
	payload := validPayload()
	payload["bullet_points"] = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}
	payload["suggested_questions"] = []string{"1", "2", "3", "4", "5", "6", "7", "8"}
	payload["narrative_summary"] = strings.Repeat("n", MaxNarrativeChars)

	_, err := Validate(marshal(t, payload))
	assert.NoError(t, err)
}
