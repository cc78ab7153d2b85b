package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"docuchat-be/internal/config"
	"docuchat-be/internal/dto"
	"docuchat-be/internal/entity"
	"docuchat-be/internal/pkg/apperrors"
	"docuchat-be/internal/pkg/logger"
	"docuchat-be/internal/repository/specification"
	"docuchat-be/internal/repository/unitofwork"
	"docuchat-be/pkg/storage"
)

type IWorkspaceService interface {
	Create(ctx context.Context, principal Principal, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error)
	List(ctx context.Context, principal Principal) ([]*dto.WorkspaceResponse, error)
	Delete(ctx context.Context, principal Principal, id uuid.UUID) error
}

type workspaceService struct {
	uowFactory unitofwork.RepositoryFactory
	store      *storage.LocalStore
	limits     config.LimitConfig
	logger     logger.ILogger
}

func NewWorkspaceService(
	uowFactory unitofwork.RepositoryFactory,
	store *storage.LocalStore,
	limits config.LimitConfig,
	log logger.ILogger,
) IWorkspaceService {
	return &workspaceService{
		uowFactory: uowFactory,
		store:      store,
		limits:     limits,
		logger:     log,
	}
}

func ownerSpec(principal Principal) specification.Specification {
	if principal.GuestId != nil {
		return specification.ByOwnerGuest{GuestId: *principal.GuestId}
	}
	return specification.ByOwnerUser{UserId: *principal.UserId}
}

func (s *workspaceService) Create(ctx context.Context, principal Principal, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	isGuest := principal.GuestId != nil
	if isGuest {
		count, err := uow.WorkspaceRepository().Count(ctx, ownerSpec(principal))
		if err != nil {
			return nil, err
		}
		if count >= s.limits.GuestMaxWorkspaces {
			return nil, &apperrors.QuotaExceededError{
				Reason: fmt.Sprintf("guest accounts are limited to %d workspaces", s.limits.GuestMaxWorkspaces),
			}
		}
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		if isGuest {
			name = "Guest Workspace"
		} else {
			name = "Workspace"
		}
	}

	workspace := &entity.Workspace{
		Id:           uuid.New(),
		Name:         name,
		IsGuest:      isGuest,
		OwnerGuestId: principal.GuestId,
		OwnerUserId:  principal.UserId,
		CreatedAt:    time.Now(),
	}

	if err := uow.WorkspaceRepository().Create(ctx, workspace); err != nil {
		return nil, err
	}

	return &dto.WorkspaceResponse{
		Id:        workspace.Id,
		Name:      workspace.Name,
		IsGuest:   workspace.IsGuest,
		CreatedAt: workspace.CreatedAt,
	}, nil
}

func (s *workspaceService) List(ctx context.Context, principal Principal) ([]*dto.WorkspaceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	workspaces, err := uow.WorkspaceRepository().FindAll(ctx,
		ownerSpec(principal),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.WorkspaceResponse, 0, len(workspaces))
	for _, w := range workspaces {
		response = append(response, &dto.WorkspaceResponse{
			Id:        w.Id,
			Name:      w.Name,
			IsGuest:   w.IsGuest,
			CreatedAt: w.CreatedAt,
		})
	}
	return response, nil
}

// Delete removes the workspace and everything hanging off it: documents,
// chunks, summaries, chat history, and stored files. Stored files go last
// and best-effort so a disk hiccup cannot leave half-deleted rows.
func (s *workspaceService) Delete(ctx context.Context, principal Principal, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := verifyWorkspaceOwnership(ctx, uow, principal, id); err != nil {
		return err
	}

	documents, err := uow.DocumentRepository().FindAll(ctx, specification.ByWorkspace{WorkspaceId: id})
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	for _, doc := range documents {
		if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
			return err
		}
		if err := uow.DocumentSummaryRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
			return err
		}
		if err := uow.ChatHistoryRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
			return err
		}
		if err := uow.DocumentRepository().Delete(ctx, doc.Id); err != nil {
			return err
		}
	}

	if err := uow.WorkspaceRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	for _, doc := range documents {
		if err := s.store.Delete(doc.StoragePath); err != nil {
			s.logger.Warn("Workspace", "Failed to delete stored file", map[string]interface{}{
				"document_id":  doc.Id,
				"storage_path": doc.StoragePath,
				"error":        err.Error(),
			})
		}
	}

	return nil
}
