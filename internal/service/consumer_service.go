package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"docuchat-be/internal/dto"
	"docuchat-be/internal/entity"
	"docuchat-be/internal/pkg/logger"
	"docuchat-be/internal/repository/specification"
	"docuchat-be/internal/repository/unitofwork"
	"docuchat-be/pkg/embedding"
	"docuchat-be/pkg/events"
	pktNats "docuchat-be/pkg/nats"
)

// statusNotifier pushes live updates to connected owners. The websocket hub
// satisfies it; a nil notifier disables pushes without changing the pipeline.
type statusNotifier interface {
	Send(ownerId uuid.UUID, payload interface{})
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	batchSize         int
	notifier          statusNotifier
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	batchSize int,
	notifier statusNotifier,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	if batchSize <= 0 {
		batchSize = 8
	}
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		batchSize:         batchSize,
		notifier:          notifier,
		eventPublisher:    eventPublisher,
		logger:            log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage embeds every still-unembedded chunk of one document.
// Vectors are persisted per chunk, so a crash mid-document resumes where it
// stopped instead of re-embedding everything. Failures are terminal: the
// document lands in failed_embedding and a new job must be requested.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Embedding", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		cs.logger.Error("Embedding", "Failed to load document", map[string]interface{}{
			"document_id": payload.DocumentId,
			"error":       err.Error(),
		})
		msg.Nack() // Retriable: storage hiccup
		return
	}
	if document == nil {
		// Deleted between upload and processing.
		msg.Ack()
		return
	}

	ownerId := cs.resolveOwner(ctx, uow, document.WorkspaceId)

	chunks, err := uow.DocumentChunkRepository().FindUnembedded(ctx, document.Id)
	if err != nil {
		cs.logger.Error("Embedding", "Failed to load unembedded chunks", map[string]interface{}{
			"document_id": document.Id,
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	if len(chunks) == 0 {
		cs.setStatus(ctx, uow, document, ownerId, entity.DocumentStatusEmbedded)
		msg.Ack()
		return
	}

	cs.setStatus(ctx, uow, document, ownerId, entity.DocumentStatusEmbedding)
	cs.logger.Info("Embedding", "Processing document", map[string]interface{}{
		"document_id": document.Id,
		"chunks":      len(chunks),
		"batch_size":  cs.batchSize,
	})

	for start := 0; start < len(chunks); start += cs.batchSize {
		end := start + cs.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Content
		}

		vectors, err := cs.embeddingProvider.EmbedBatch(ctx, texts)
		if err != nil {
			cs.logger.Error("Embedding", "Batch embedding failed", map[string]interface{}{
				"document_id": document.Id,
				"batch_start": start,
				"error":       err.Error(),
			})
			cs.setStatus(ctx, uow, document, ownerId, entity.DocumentStatusFailedEmbedding)
			msg.Ack()
			return
		}

		for i, c := range batch {
			if err := uow.DocumentChunkRepository().UpdateEmbedding(ctx, c.Id, vectors[i]); err != nil {
				cs.logger.Error("Embedding", "Failed to persist vector", map[string]interface{}{
					"document_id": document.Id,
					"chunk_index": c.ChunkIndex,
					"error":       err.Error(),
				})
				cs.setStatus(ctx, uow, document, ownerId, entity.DocumentStatusFailedEmbedding)
				msg.Ack()
				return
			}
		}
	}

	cs.setStatus(ctx, uow, document, ownerId, entity.DocumentStatusEmbedded)
	cs.logger.Info("Embedding", "Document embedded", map[string]interface{}{
		"document_id": document.Id,
		"chunks":      len(chunks),
	})
	msg.Ack()
}

func (cs *consumerService) setStatus(ctx context.Context, uow unitofwork.UnitOfWork, document *entity.Document, ownerId uuid.UUID, status entity.DocumentStatus) {
	if err := uow.DocumentRepository().UpdateStatus(ctx, document.Id, status); err != nil {
		cs.logger.Error("Embedding", "Failed to update document status", map[string]interface{}{
			"document_id": document.Id,
			"status":      status,
			"error":       err.Error(),
		})
		return
	}

	if cs.notifier != nil && ownerId != uuid.Nil {
		cs.notifier.Send(ownerId, map[string]interface{}{
			"type":        "document_status",
			"document_id": document.Id,
			"status":      string(status),
		})
	}

	if cs.eventPublisher != nil {
		evt := events.NewDocumentStatusChanged(document.Id, string(status))
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			cs.logger.Warn("Embedding", "Failed to publish status event", map[string]interface{}{
				"document_id": document.Id,
				"error":       err.Error(),
			})
		}
	}
}

func (cs *consumerService) resolveOwner(ctx context.Context, uow unitofwork.UnitOfWork, workspaceId uuid.UUID) uuid.UUID {
	workspace, err := uow.WorkspaceRepository().FindOne(ctx, specification.ByID{ID: workspaceId})
	if err != nil || workspace == nil {
		return uuid.Nil
	}
	if workspace.OwnerGuestId != nil {
		return *workspace.OwnerGuestId
	}
	if workspace.OwnerUserId != nil {
		return *workspace.OwnerUserId
	}
	return uuid.Nil
}
