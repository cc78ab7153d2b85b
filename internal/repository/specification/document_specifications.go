package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByWorkspace scopes documents or chunks to one workspace.
type ByWorkspace struct {
	WorkspaceId uuid.UUID
}

func (s ByWorkspace) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("workspace_id = ?", s.WorkspaceId)
}

// ByDocument scopes chunks, summaries or history to one document.
type ByDocument struct {
	DocumentId uuid.UUID
}

func (s ByDocument) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentId)
}

// ByOwnerGuest scopes workspaces to a guest owner.
type ByOwnerGuest struct {
	GuestId uuid.UUID
}

func (s ByOwnerGuest) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_guest_id = ?", s.GuestId)
}

// ByOwnerUser scopes workspaces to a registered owner.
type ByOwnerUser struct {
	UserId uuid.UUID
}

func (s ByOwnerUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_user_id = ?", s.UserId)
}

// ByEmail filters users by email.
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// Embedded filters chunks that already carry a vector.
type Embedded struct{}

func (s Embedded) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("embedding IS NOT NULL")
}
