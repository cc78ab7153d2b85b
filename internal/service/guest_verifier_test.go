package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"docuchat-be/internal/entity"
	"docuchat-be/internal/repository/memory"
)

func newGuest(ttl time.Duration) *entity.Guest {
	expiresAt := time.Now().Add(ttl)
	return &entity.Guest{
		Id:        uuid.New(),
		SessionId: uuid.New().String(),
		CreatedAt: time.Now(),
		ExpiresAt: &expiresAt,
	}
}

func TestVerifyGuestServesFromCacheWithoutDatabase(t *testing.T) {
	cache := memory.NewGuestSessionCache()
	guest := newGuest(time.Hour)
	cache.Save(guest)

	// The uow holds no guest row: a database fallback would return false.
	verifier := NewGuestSessionVerifier(&stubUowFactory{uow: &stubUow{}}, cache, noopLogger{})

	assert.True(t, verifier.VerifyGuest(context.Background(), guest.Id))
}

func TestVerifyGuestFallsBackToDatabaseAndRefillsCache(t *testing.T) {
	cache := memory.NewGuestSessionCache()
	guest := newGuest(time.Hour)
	verifier := NewGuestSessionVerifier(&stubUowFactory{uow: &stubUow{guest: guest}}, cache, noopLogger{})

	assert.True(t, verifier.VerifyGuest(context.Background(), guest.Id))

	cached, found := cache.Get(guest.Id)
	assert.True(t, found)
	assert.Equal(t, guest.Id, cached.Id)
}

func TestVerifyGuestEvictsExpiredCacheEntries(t *testing.T) {
	cache := memory.NewGuestSessionCache()
	guest := newGuest(-time.Minute)
	cache.Save(guest)

	verifier := NewGuestSessionVerifier(&stubUowFactory{uow: &stubUow{guest: guest}}, cache, noopLogger{})

	assert.False(t, verifier.VerifyGuest(context.Background(), guest.Id))

	_, found := cache.Get(guest.Id)
	assert.False(t, found)

	// The database still holds the expired row; the fallback rejects it too.
	assert.False(t, verifier.VerifyGuest(context.Background(), guest.Id))
}

func TestVerifyGuestRejectsUnknownGuests(t *testing.T) {
	cache := memory.NewGuestSessionCache()
	verifier := NewGuestSessionVerifier(&stubUowFactory{uow: &stubUow{}}, cache, noopLogger{})

	assert.False(t, verifier.VerifyGuest(context.Background(), uuid.New()))
}
