package service

import (
	"context"

	"github.com/google/uuid"

	"docuchat-be/internal/entity"
	"docuchat-be/internal/pkg/apperrors"
	"docuchat-be/internal/repository/specification"
	"docuchat-be/internal/repository/unitofwork"
)

// Principal identifies the caller of a service operation. Exactly one of
// GuestId and UserId is set; the session middleware guarantees it.
type Principal struct {
	GuestId *uuid.UUID
	UserId  *uuid.UUID
}

func (p Principal) owns(ws *entity.Workspace) bool {
	if p.GuestId != nil && ws.OwnerGuestId != nil {
		return *p.GuestId == *ws.OwnerGuestId
	}
	if p.UserId != nil && ws.OwnerUserId != nil {
		return *p.UserId == *ws.OwnerUserId
	}
	return false
}

// verifyWorkspaceOwnership loads a workspace and checks the caller owns it.
// A workspace owned by someone else reads as not found so the API does not
// confirm its existence.
func verifyWorkspaceOwnership(ctx context.Context, uow unitofwork.UnitOfWork, principal Principal, workspaceId uuid.UUID) (*entity.Workspace, error) {
	workspace, err := uow.WorkspaceRepository().FindOne(ctx, specification.ByID{ID: workspaceId})
	if err != nil {
		return nil, err
	}
	if workspace == nil || !principal.owns(workspace) {
		return nil, &apperrors.NotFoundError{Resource: "workspace"}
	}
	return workspace, nil
}

// verifyDocumentOwnership resolves a document through its workspace and
// checks ownership the same way.
func verifyDocumentOwnership(ctx context.Context, uow unitofwork.UnitOfWork, principal Principal, documentId uuid.UUID) (*entity.Document, error) {
	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, &apperrors.NotFoundError{Resource: "document"}
	}
	if _, err := verifyWorkspaceOwnership(ctx, uow, principal, document.WorkspaceId); err != nil {
		return nil, &apperrors.NotFoundError{Resource: "document"}
	}
	return document, nil
}
