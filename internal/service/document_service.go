package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"docuchat-be/internal/config"
	"docuchat-be/internal/dto"
	"docuchat-be/internal/entity"
	"docuchat-be/internal/pkg/apperrors"
	"docuchat-be/internal/pkg/logger"
	"docuchat-be/internal/repository/specification"
	"docuchat-be/internal/repository/unitofwork"
	"docuchat-be/pkg/chunker"
	"docuchat-be/pkg/events"
	"docuchat-be/pkg/extraction"
	pktNats "docuchat-be/pkg/nats"
	"docuchat-be/pkg/storage"
)

// fileURLTTL bounds how long a signed download link stays valid.
const fileURLTTL = 15 * time.Minute

// chunkPreviewChars caps chunk content in listings, matching the citation
// snippet cap.
const chunkPreviewChars = 300

type IDocumentService interface {
	Upload(ctx context.Context, principal Principal, workspaceId uuid.UUID, filename, contentType string, fileBytes []byte) (*dto.DocumentUploadResponse, error)
	List(ctx context.Context, principal Principal, workspaceId uuid.UUID) ([]*dto.DocumentResponse, error)
	GetFileURL(ctx context.Context, principal Principal, documentId uuid.UUID) (*dto.DocumentFileURLResponse, error)
	ListChunks(ctx context.Context, principal Principal, documentId uuid.UUID) ([]*dto.DocumentChunkResponse, error)
	RequestEmbedding(ctx context.Context, principal Principal, documentId uuid.UUID) (*dto.EmbedDocumentResponse, error)
	Delete(ctx context.Context, principal Principal, documentId uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	store            *storage.LocalStore
	signer           *storage.URLSigner
	eventPublisher   *pktNats.Publisher
	chunkCfg         chunker.Config
	limits           config.LimitConfig
	logger           logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	store *storage.LocalStore,
	signer *storage.URLSigner,
	eventPublisher *pktNats.Publisher,
	chunkCfg chunker.Config,
	limits config.LimitConfig,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		store:            store,
		signer:           signer,
		eventPublisher:   eventPublisher,
		chunkCfg:         chunkCfg,
		limits:           limits,
		logger:           log,
	}
}

// Upload runs the synchronous half of the ingestion pipeline: extract,
// chunk, persist, then queue the embedding job. The document comes back in
// status "uploaded"; embedding progresses asynchronously.
func (s *documentService) Upload(ctx context.Context, principal Principal, workspaceId uuid.UUID, filename, contentType string, fileBytes []byte) (*dto.DocumentUploadResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	workspace, err := verifyWorkspaceOwnership(ctx, uow, principal, workspaceId)
	if err != nil {
		return nil, err
	}

	if int64(len(fileBytes)) > s.limits.MaxFileSizeBytes {
		return nil, &apperrors.QuotaExceededError{
			Reason: fmt.Sprintf("file exceeds the %d byte limit", s.limits.MaxFileSizeBytes),
		}
	}

	if workspace.IsGuest {
		count, err := uow.DocumentRepository().Count(ctx, specification.ByWorkspace{WorkspaceId: workspaceId})
		if err != nil {
			return nil, err
		}
		if count >= s.limits.GuestMaxDocuments {
			return nil, &apperrors.QuotaExceededError{
				Reason: fmt.Sprintf("guest workspaces are limited to %d documents", s.limits.GuestMaxDocuments),
			}
		}
	}

	extracted, err := extraction.Extract(fileBytes, contentType, filename)
	if err != nil {
		return nil, err
	}

	chk, err := chunker.New(chunker.NewTokenizer(), s.chunkCfg)
	if err != nil {
		return nil, err
	}
	chunks := chk.ChunkPages(extracted.Pages)

	storagePath, err := s.store.Save(fileBytes, filename)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	document := &entity.Document{
		Id:          uuid.New(),
		WorkspaceId: workspaceId,
		Filename:    filename,
		FileType:    extracted.DetectedType,
		FileSize:    int64(len(fileBytes)),
		StoragePath: storagePath,
		Status:      entity.DocumentStatusUploaded,
		CreatedAt:   now,
	}

	chunkEntities := make([]*entity.DocumentChunk, 0, len(chunks))
	for _, c := range chunks {
		chunkEntities = append(chunkEntities, &entity.DocumentChunk{
			Id:          uuid.New(),
			DocumentId:  document.Id,
			WorkspaceId: workspaceId,
			ChunkIndex:  c.Index,
			PageStart:   c.PageStart,
			PageEnd:     c.PageEnd,
			TokenCount:  c.TokenCount,
			Content:     c.Content,
			CreatedAt:   now,
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		return nil, err
	}
	if len(chunkEntities) > 0 {
		if err := uow.DocumentChunkRepository().CreateBulk(ctx, chunkEntities); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	msgJson, err := json.Marshal(dto.PublishEmbedDocumentMessage{DocumentId: document.Id})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewDocumentUploaded(document.Id, workspaceId, filename)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("Document", "Failed to publish upload event", map[string]interface{}{
				"document_id": document.Id,
				"error":       err.Error(),
			})
		}
	}

	return &dto.DocumentUploadResponse{
		Id:          document.Id,
		WorkspaceId: workspaceId,
		Filename:    document.Filename,
		FileType:    document.FileType,
		FileSize:    document.FileSize,
		Status:      string(document.Status),
		PageCount:   len(extracted.Pages),
		ChunkCount:  len(chunks),
		CreatedAt:   document.CreatedAt,
	}, nil
}

func (s *documentService) List(ctx context.Context, principal Principal, workspaceId uuid.UUID) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := verifyWorkspaceOwnership(ctx, uow, principal, workspaceId); err != nil {
		return nil, err
	}

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByWorkspace{WorkspaceId: workspaceId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.DocumentResponse, 0, len(documents))
	for _, d := range documents {
		response = append(response, &dto.DocumentResponse{
			Id:        d.Id,
			Filename:  d.Filename,
			FileType:  d.FileType,
			FileSize:  d.FileSize,
			Status:    string(d.Status),
			CreatedAt: d.CreatedAt,
		})
	}
	return response, nil
}

func (s *documentService) GetFileURL(ctx context.Context, principal Principal, documentId uuid.UUID) (*dto.DocumentFileURLResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := verifyDocumentOwnership(ctx, uow, principal, documentId)
	if err != nil {
		return nil, err
	}

	return &dto.DocumentFileURLResponse{
		DocumentId: document.Id,
		URL:        s.signer.SignedURL(document.StoragePath, fileURLTTL),
		ExpiresIn:  int(fileURLTTL.Seconds()),
	}, nil
}

func (s *documentService) ListChunks(ctx context.Context, principal Principal, documentId uuid.UUID) ([]*dto.DocumentChunkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := verifyDocumentOwnership(ctx, uow, principal, documentId); err != nil {
		return nil, err
	}

	chunks, err := uow.DocumentChunkRepository().FindAll(ctx,
		specification.ByDocument{DocumentId: documentId},
		specification.OrderBy{Field: "chunk_index", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.DocumentChunkResponse, 0, len(chunks))
	for _, c := range chunks {
		response = append(response, &dto.DocumentChunkResponse{
			ChunkIndex: c.ChunkIndex,
			PageStart:  c.PageStart,
			PageEnd:    c.PageEnd,
			TokenCount: c.TokenCount,
			Content:    previewContent(c.Content),
			Embedded:   c.Embedding != nil,
		})
	}
	return response, nil
}

// previewContent caps listed chunk content at the citation snippet length;
// clients fetch the file itself for full text.
func previewContent(content string) string {
	runes := []rune(content)
	if len(runes) <= chunkPreviewChars {
		return content
	}
	return string(runes[:chunkPreviewChars])
}

// RequestEmbedding re-queues the embedding job. Safe to call on partially
// embedded documents: the consumer only processes chunks still missing a
// vector.
func (s *documentService) RequestEmbedding(ctx context.Context, principal Principal, documentId uuid.UUID) (*dto.EmbedDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := verifyDocumentOwnership(ctx, uow, principal, documentId)
	if err != nil {
		return nil, err
	}

	msgJson, err := json.Marshal(dto.PublishEmbedDocumentMessage{DocumentId: document.Id})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	embedded, err := uow.DocumentChunkRepository().CountEmbedded(ctx, document.WorkspaceId, &document.Id)
	if err != nil {
		return nil, err
	}

	return &dto.EmbedDocumentResponse{
		DocumentId:     document.Id,
		EmbeddedChunks: int(embedded),
		Status:         string(entity.DocumentStatusEmbedding),
	}, nil
}

func (s *documentService) Delete(ctx context.Context, principal Principal, documentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := verifyDocumentOwnership(ctx, uow, principal, documentId)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, documentId); err != nil {
		return err
	}
	if err := uow.DocumentSummaryRepository().DeleteByDocumentId(ctx, documentId); err != nil {
		return err
	}
	if err := uow.ChatHistoryRepository().DeleteByDocumentId(ctx, documentId); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, documentId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	if err := s.store.Delete(document.StoragePath); err != nil {
		s.logger.Warn("Document", "Failed to delete stored file", map[string]interface{}{
			"document_id":  documentId,
			"storage_path": document.StoragePath,
			"error":        err.Error(),
		})
	}

	return nil
}
