package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuchat-be/internal/pkg/apperrors"
	"docuchat-be/pkg/rag"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

type stubEmbedder struct {
	err error
}

func (s *stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.2, 0.3}
	}
	return out, nil
}

func (s *stubEmbedder) ModelName() string { return "stub-embedder" }

type stubSearcher struct {
	total       int64
	ranked      []rag.Candidate
	countErr    error
	searchErr   error
	gotLimit    int
	gotDocScope *uuid.UUID
}

func (s *stubSearcher) CountEmbedded(_ context.Context, _ uuid.UUID, documentId *uuid.UUID) (int64, error) {
	s.gotDocScope = documentId
	return s.total, s.countErr
}

func (s *stubSearcher) SearchNearest(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _ []float32, limit int) ([]rag.Candidate, error) {
	s.gotLimit = limit
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	if limit < len(s.ranked) {
		return s.ranked[:limit], nil
	}
	return s.ranked, nil
}

func candidateWithScore(score float64) rag.Candidate {
	return rag.Candidate{
		DocumentId: uuid.New(),
		Content:    "some content",
		Score:      score,
	}
}

func TestCutoffForCorpusSize(t *testing.T) {
	assert.Equal(t, 0.92, cutoffForCorpusSize(0))
	assert.Equal(t, 0.92, cutoffForCorpusSize(10))
	assert.Equal(t, 0.88, cutoffForCorpusSize(11))
	assert.Equal(t, 0.88, cutoffForCorpusSize(50))
	assert.Equal(t, 0.85, cutoffForCorpusSize(51))
	assert.Equal(t, 0.85, cutoffForCorpusSize(10000))
}

func TestRetrieve_FiltersAfterTopK(t *testing.T) {
	// Corpus of 100 chunks -> cutoff 0.85. Top-5 ranked results straddle
	// the cutoff; only the passing ones within the top-k survive.
	searcher := &stubSearcher{
		total: 100,
		ranked: []rag.Candidate{
			candidateWithScore(0.10),
			candidateWithScore(0.40),
			candidateWithScore(0.84),
			candidateWithScore(0.86),
			candidateWithScore(0.90),
		},
	}
	r := NewRetriever(&stubEmbedder{}, searcher, noopLogger{})

	got, err := r.Retrieve(context.Background(), Scope{WorkspaceId: uuid.New()}, "what is it about", 5)
	require.NoError(t, err)

	assert.Equal(t, 5, searcher.gotLimit)
	require.Len(t, got, 3)
	for _, c := range got {
		assert.LessOrEqual(t, c.Score, 0.85)
	}
}

func TestRetrieve_SmallCorpusLoosensCutoff(t *testing.T) {
	// 8 embedded chunks -> cutoff 0.92, so 0.90 passes.
	searcher := &stubSearcher{
		total: 8,
		ranked: []rag.Candidate{
			candidateWithScore(0.90),
			candidateWithScore(0.95),
		},
	}
	r := NewRetriever(&stubEmbedder{}, searcher, noopLogger{})

	got, err := r.Retrieve(context.Background(), Scope{WorkspaceId: uuid.New()}, "q", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 0.90, got[0].Score)
}

func TestRetrieve_DefaultTopK(t *testing.T) {
	searcher := &stubSearcher{total: 1}
	r := NewRetriever(&stubEmbedder{}, searcher, noopLogger{})

	_, err := r.Retrieve(context.Background(), Scope{WorkspaceId: uuid.New()}, "q", 0)
	require.NoError(t, err)
	assert.Equal(t, 5, searcher.gotLimit)
}

func TestRetrieve_EmptyCandidatesIsNotAnError(t *testing.T) {
	searcher := &stubSearcher{total: 0}
	r := NewRetriever(&stubEmbedder{}, searcher, noopLogger{})

	got, err := r.Retrieve(context.Background(), Scope{WorkspaceId: uuid.New()}, "q", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRetrieve_DocumentScopeIsForwarded(t *testing.T) {
	docId := uuid.New()
	searcher := &stubSearcher{total: 3}
	r := NewRetriever(&stubEmbedder{}, searcher, noopLogger{})

	_, err := r.Retrieve(context.Background(), Scope{WorkspaceId: uuid.New(), DocumentId: &docId}, "q", 5)
	require.NoError(t, err)
	require.NotNil(t, searcher.gotDocScope)
	assert.Equal(t, docId, *searcher.gotDocScope)
}

func TestRetrieve_EmbedderFailureIsEmbeddingServiceError(t *testing.T) {
	r := NewRetriever(&stubEmbedder{err: errors.New("upstream 503")}, &stubSearcher{}, noopLogger{})

	_, err := r.Retrieve(context.Background(), Scope{WorkspaceId: uuid.New()}, "q", 5)
	require.Error(t, err)

	var embedErr *apperrors.EmbeddingServiceError
	assert.ErrorAs(t, err, &embedErr)
}

func TestRetrieve_StorageFailuresAreStorageErrors(t *testing.T) {
	cases := map[string]*stubSearcher{
		"count":  {countErr: errors.New("connection refused")},
		"search": {total: 20, searchErr: errors.New("connection reset")},
	}
	for name, searcher := range cases {
		t.Run(name, func(t *testing.T) {
			r := NewRetriever(&stubEmbedder{}, searcher, noopLogger{})
			_, err := r.Retrieve(context.Background(), Scope{WorkspaceId: uuid.New()}, "q", 5)
			require.Error(t, err)

			var storageErr *apperrors.StorageError
			assert.ErrorAs(t, err, &storageErr)
		})
	}
}
