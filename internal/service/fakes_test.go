package service

import (
	"context"

	"github.com/google/uuid"

	"docuchat-be/internal/entity"
	"docuchat-be/internal/repository/contract"
	"docuchat-be/internal/repository/specification"
	"docuchat-be/internal/repository/unitofwork"
	"docuchat-be/pkg/rag"
)

// The fakes below satisfy just enough of the repository contracts for
// service tests: single-record lookups, recorded writes, canned vectors.

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

type stubUow struct {
	guest     *entity.Guest
	workspace *entity.Workspace
	document  *entity.Document
	chunks    []*entity.DocumentChunk

	history   []*entity.DocumentChatEntry
	summaries []*entity.DocumentSummary
}

type stubUowFactory struct {
	uow *stubUow
}

func (f *stubUowFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func (u *stubUow) Begin(_ context.Context) error { return nil }
func (u *stubUow) Commit() error                 { return nil }
func (u *stubUow) Rollback() error               { return nil }

func (u *stubUow) GuestRepository() contract.GuestRepository {
	return &stubGuestRepo{uow: u}
}

func (u *stubUow) UserRepository() contract.UserRepository { return nil }

func (u *stubUow) WorkspaceRepository() contract.WorkspaceRepository {
	return &stubWorkspaceRepo{uow: u}
}

func (u *stubUow) DocumentRepository() contract.DocumentRepository {
	return &stubDocumentRepo{uow: u}
}

func (u *stubUow) DocumentChunkRepository() contract.DocumentChunkRepository {
	return &stubChunkRepo{uow: u}
}

func (u *stubUow) DocumentSummaryRepository() contract.DocumentSummaryRepository {
	return &stubSummaryRepo{uow: u}
}

func (u *stubUow) ChatHistoryRepository() contract.ChatHistoryRepository {
	return &stubHistoryRepo{uow: u}
}

type stubGuestRepo struct {
	uow *stubUow
}

func (r *stubGuestRepo) Create(_ context.Context, guest *entity.Guest) error {
	r.uow.guest = guest
	return nil
}
func (r *stubGuestRepo) FindById(_ context.Context, id uuid.UUID) (*entity.Guest, error) {
	if r.uow.guest != nil && r.uow.guest.Id == id {
		return r.uow.guest, nil
	}
	return nil, nil
}
func (r *stubGuestRepo) FindBySessionId(_ context.Context, sessionId string) (*entity.Guest, error) {
	if r.uow.guest != nil && r.uow.guest.SessionId == sessionId {
		return r.uow.guest, nil
	}
	return nil, nil
}

type stubWorkspaceRepo struct {
	uow *stubUow
}

func (r *stubWorkspaceRepo) Create(_ context.Context, workspace *entity.Workspace) error {
	r.uow.workspace = workspace
	return nil
}
func (r *stubWorkspaceRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }
func (r *stubWorkspaceRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.Workspace, error) {
	return r.uow.workspace, nil
}
func (r *stubWorkspaceRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Workspace, error) {
	if r.uow.workspace == nil {
		return nil, nil
	}
	return []*entity.Workspace{r.uow.workspace}, nil
}
func (r *stubWorkspaceRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	if r.uow.workspace == nil {
		return 0, nil
	}
	return 1, nil
}

type stubDocumentRepo struct {
	uow *stubUow
}

func (r *stubDocumentRepo) Create(_ context.Context, document *entity.Document) error {
	r.uow.document = document
	return nil
}
func (r *stubDocumentRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }
func (r *stubDocumentRepo) UpdateStatus(_ context.Context, _ uuid.UUID, status entity.DocumentStatus) error {
	if r.uow.document != nil {
		r.uow.document.Status = status
	}
	return nil
}
func (r *stubDocumentRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.Document, error) {
	return r.uow.document, nil
}
func (r *stubDocumentRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Document, error) {
	if r.uow.document == nil {
		return nil, nil
	}
	return []*entity.Document{r.uow.document}, nil
}
func (r *stubDocumentRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	if r.uow.document == nil {
		return 0, nil
	}
	return 1, nil
}

type stubChunkRepo struct {
	uow *stubUow
}

func (r *stubChunkRepo) CreateBulk(_ context.Context, chunks []*entity.DocumentChunk) error {
	r.uow.chunks = append(r.uow.chunks, chunks...)
	return nil
}
func (r *stubChunkRepo) DeleteByDocumentId(_ context.Context, _ uuid.UUID) error { return nil }
func (r *stubChunkRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.DocumentChunk, error) {
	return r.uow.chunks, nil
}
func (r *stubChunkRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.uow.chunks)), nil
}
func (r *stubChunkRepo) FindUnembedded(_ context.Context, _ uuid.UUID) ([]*entity.DocumentChunk, error) {
	var out []*entity.DocumentChunk
	for _, c := range r.uow.chunks {
		if c.Embedding == nil {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *stubChunkRepo) UpdateEmbedding(_ context.Context, id uuid.UUID, embedding []float32) error {
	for _, c := range r.uow.chunks {
		if c.Id == id {
			c.Embedding = embedding
		}
	}
	return nil
}
func (r *stubChunkRepo) CountEmbedded(_ context.Context, _ uuid.UUID, _ *uuid.UUID) (int64, error) {
	var n int64
	for _, c := range r.uow.chunks {
		if c.Embedding != nil {
			n++
		}
	}
	return n, nil
}
func (r *stubChunkRepo) SearchNearest(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _ []float32, _ int) ([]rag.Candidate, error) {
	return nil, nil
}

type stubSummaryRepo struct {
	uow *stubUow
}

func (r *stubSummaryRepo) Save(_ context.Context, summary *entity.DocumentSummary) error {
	copied := *summary
	r.uow.summaries = append(r.uow.summaries, &copied)
	return nil
}
func (r *stubSummaryRepo) FindByDocumentId(_ context.Context, _ uuid.UUID) (*entity.DocumentSummary, error) {
	if len(r.uow.summaries) == 0 {
		return nil, nil
	}
	return r.uow.summaries[len(r.uow.summaries)-1], nil
}
func (r *stubSummaryRepo) DeleteByDocumentId(_ context.Context, _ uuid.UUID) error { return nil }

type stubHistoryRepo struct {
	uow *stubUow
}

func (r *stubHistoryRepo) Append(_ context.Context, entry *entity.DocumentChatEntry) error {
	r.uow.history = append(r.uow.history, entry)
	return nil
}
func (r *stubHistoryRepo) FindByDocumentId(_ context.Context, _ uuid.UUID, _, _ int) ([]*entity.DocumentChatEntry, error) {
	return r.uow.history, nil
}
func (r *stubHistoryRepo) DeleteByDocumentId(_ context.Context, _ uuid.UUID) error { return nil }
