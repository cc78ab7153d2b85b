package apperrors

import (
	"errors"
	"fmt"
)

// ErrChunkConfig is returned when chunking is invoked with an invalid
// token-window configuration (overlap >= chunk size).
var ErrChunkConfig = errors.New("overlap_tokens must be < chunk_tokens")

// ExtractionError marks an unsupported or unreadable upload. Surfaced to the
// caller as a client error, never retried.
type ExtractionError struct {
	ContentType string
	Reason      string
}

func (e *ExtractionError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("unsupported document type: %s", e.ContentType)
	}
	return fmt.Sprintf("extraction failed (%s): %s", e.ContentType, e.Reason)
}

// EmbeddingServiceError wraps a failure of the embedding collaborator.
// Fatal to the request; the core never retries it.
type EmbeddingServiceError struct {
	Err error
}

func (e *EmbeddingServiceError) Error() string {
	return fmt.Sprintf("embedding service: %v", e.Err)
}

func (e *EmbeddingServiceError) Unwrap() error { return e.Err }

// StorageError wraps a failure of the persistent store during retrieval.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %v", e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ProtocolViolationError signals that the generation step cited a source that
// was not in the retrieved candidate set. This is a fabrication, not a content
// gap: it must surface as a hard server error and never degrade to a refusal.
type ProtocolViolationError struct {
	DocumentId string
	ChunkIndex int
}

func (e *ProtocolViolationError) Error() string {
	return fmt.Sprintf("fabricated citation: (document_id=%s, chunk_index=%d) not in retrieved set", e.DocumentId, e.ChunkIndex)
}

// SummarySchemaViolation is raised when the summarization output breaks the
// strict summary contract. The caller records it as a terminal failed status.
type SummarySchemaViolation struct {
	Reason string
}

func (e *SummarySchemaViolation) Error() string {
	return fmt.Sprintf("summary schema violation: %s", e.Reason)
}

// NotFoundError names a missing resource; maps to 404.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ForbiddenError marks an ownership or access failure; maps to 403.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	if e.Reason == "" {
		return "not allowed"
	}
	return e.Reason
}

// QuotaExceededError marks a guest limit hit; maps to 403.
type QuotaExceededError struct {
	Reason string
}

func (e *QuotaExceededError) Error() string {
	return e.Reason
}

func IsClientError(err error) bool {
	var extraction *ExtractionError
	return errors.Is(err, ErrChunkConfig) || errors.As(err, &extraction)
}
