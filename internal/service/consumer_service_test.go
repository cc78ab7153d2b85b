package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuchat-be/internal/dto"
	"docuchat-be/internal/entity"
)

type recordingEmbedder struct {
	texts []string
	err   error
}

func (e *recordingEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.texts = append(e.texts, texts...)
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.5}
	}
	return out, nil
}
func (e *recordingEmbedder) ModelName() string { return "fake-embed" }

type recordingNotifier struct {
	statuses []string
}

func (n *recordingNotifier) Send(_ uuid.UUID, payload interface{}) {
	if m, ok := payload.(map[string]interface{}); ok {
		n.statuses = append(n.statuses, m["status"].(string))
	}
}

func newConsumerFixture(embedder *recordingEmbedder) (*stubUow, *recordingNotifier, *consumerService, *message.Message) {
	guestId := uuid.New()
	workspaceId := uuid.New()
	documentId := uuid.New()

	uow := &stubUow{
		workspace: &entity.Workspace{
			Id:           workspaceId,
			IsGuest:      true,
			OwnerGuestId: &guestId,
		},
		document: &entity.Document{
			Id:          documentId,
			WorkspaceId: workspaceId,
			Filename:    "report.pdf",
			Status:      entity.DocumentStatusUploaded,
		},
		chunks: []*entity.DocumentChunk{
			{Id: uuid.New(), DocumentId: documentId, ChunkIndex: 0, Content: "first"},
			{Id: uuid.New(), DocumentId: documentId, ChunkIndex: 1, Content: "second"},
			{Id: uuid.New(), DocumentId: documentId, ChunkIndex: 2, Content: "third"},
		},
	}

	notifier := &recordingNotifier{}
	cs := &consumerService{
		topicName:         "embed_documents",
		uowFactory:        &stubUowFactory{uow: uow},
		embeddingProvider: embedder,
		batchSize:         2,
		notifier:          notifier,
		logger:            noopLogger{},
	}

	payload, _ := json.Marshal(dto.PublishEmbedDocumentMessage{DocumentId: documentId})
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return uow, notifier, cs, msg
}

func TestProcessMessageEmbedsAllChunks(t *testing.T) {
	embedder := &recordingEmbedder{}
	uow, notifier, cs, msg := newConsumerFixture(embedder)

	cs.processMessage(context.Background(), msg)

	assert.Equal(t, entity.DocumentStatusEmbedded, uow.document.Status)
	for _, c := range uow.chunks {
		assert.NotNil(t, c.Embedding)
	}
	// batchSize 2 splits three chunks into two provider calls.
	assert.Equal(t, []string{"first", "second", "third"}, embedder.texts)
	assert.Equal(t, []string{"embedding", "embedded"}, notifier.statuses)
}

func TestProcessMessageResumesFromUnembeddedChunks(t *testing.T) {
	embedder := &recordingEmbedder{}
	uow, _, cs, msg := newConsumerFixture(embedder)
	uow.chunks[0].Embedding = []float32{0.9}

	cs.processMessage(context.Background(), msg)

	assert.Equal(t, entity.DocumentStatusEmbedded, uow.document.Status)
	assert.Equal(t, []string{"second", "third"}, embedder.texts)
}

func TestProcessMessageEmbedFailureIsTerminal(t *testing.T) {
	embedder := &recordingEmbedder{err: errors.New("provider unavailable")}
	uow, notifier, cs, msg := newConsumerFixture(embedder)

	cs.processMessage(context.Background(), msg)

	assert.Equal(t, entity.DocumentStatusFailedEmbedding, uow.document.Status)
	for _, c := range uow.chunks {
		assert.Nil(t, c.Embedding)
	}
	require.NotEmpty(t, notifier.statuses)
	assert.Equal(t, "failed_embedding", notifier.statuses[len(notifier.statuses)-1])
}

func TestProcessMessageFullyEmbeddedShortCircuits(t *testing.T) {
	embedder := &recordingEmbedder{}
	uow, _, cs, msg := newConsumerFixture(embedder)
	for _, c := range uow.chunks {
		c.Embedding = []float32{0.9}
	}

	cs.processMessage(context.Background(), msg)

	assert.Equal(t, entity.DocumentStatusEmbedded, uow.document.Status)
	assert.Empty(t, embedder.texts)
}
