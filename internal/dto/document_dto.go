package dto

import (
	"time"

	"github.com/google/uuid"
)

// PublishEmbedDocumentMessage is the embedding queue payload.
type PublishEmbedDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}

type DocumentUploadResponse struct {
	Id          uuid.UUID `json:"id"`
	WorkspaceId uuid.UUID `json:"workspace_id"`
	Filename    string    `json:"filename"`
	FileType    string    `json:"file_type"`
	FileSize    int64     `json:"file_size"`
	Status      string    `json:"status"`
	PageCount   int       `json:"page_count"`
	ChunkCount  int       `json:"chunk_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type DocumentResponse struct {
	Id        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	FileType  string    `json:"file_type"`
	FileSize  int64     `json:"file_size"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type DocumentFileURLResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
	URL        string    `json:"url"`
	ExpiresIn  int       `json:"expires_in"`
}

type DocumentChunkResponse struct {
	ChunkIndex int    `json:"chunk_index"`
	PageStart  int    `json:"page_start"`
	PageEnd    int    `json:"page_end"`
	TokenCount int    `json:"token_count"`
	Content    string `json:"content"`
	Embedded   bool   `json:"embedded"`
}

type EmbedDocumentResponse struct {
	DocumentId     uuid.UUID `json:"document_id"`
	EmbeddedChunks int       `json:"embedded_chunks"`
	Status         string    `json:"status"`
}
