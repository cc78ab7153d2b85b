package events

import (
	"time"

	"github.com/google/uuid"
)

// Event type codes published to the NATS bus.
const (
	TypeDocumentUploaded      = "DOCUMENT_UPLOADED"
	TypeDocumentStatusChanged = "DOCUMENT_STATUS_CHANGED"
	TypeSummaryCompleted      = "SUMMARY_COMPLETED"
)

// NewDocumentUploaded is emitted after a document has been stored and chunked.
func NewDocumentUploaded(documentId, workspaceId uuid.UUID, filename string) BaseEvent {
	return BaseEvent{
		Type: TypeDocumentUploaded,
		Data: map[string]interface{}{
			"document_id":  documentId,
			"workspace_id": workspaceId,
			"filename":     filename,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentStatusChanged is emitted on every embedding status transition.
func NewDocumentStatusChanged(documentId uuid.UUID, status string) BaseEvent {
	return BaseEvent{
		Type: TypeDocumentStatusChanged,
		Data: map[string]interface{}{
			"document_id": documentId,
			"status":      status,
		},
		OccurredAt: time.Now(),
	}
}

// NewSummaryCompleted is emitted when a summary run reaches a terminal state.
func NewSummaryCompleted(documentId uuid.UUID, status string) BaseEvent {
	return BaseEvent{
		Type: TypeSummaryCompleted,
		Data: map[string]interface{}{
			"document_id": documentId,
			"status":      status,
		},
		OccurredAt: time.Now(),
	}
}
