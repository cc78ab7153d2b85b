package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"docuchat-be/internal/pkg/logger"
	"docuchat-be/internal/repository/memory"
	"docuchat-be/internal/repository/unitofwork"
)

// IGuestSessionVerifier confirms that a guest id from a token still maps to
// a live guest row. The session middleware calls it on every guest request,
// so lookups go through the in-process cache first.
type IGuestSessionVerifier interface {
	VerifyGuest(ctx context.Context, guestId uuid.UUID) bool
}

type guestSessionVerifier struct {
	uowFactory   unitofwork.RepositoryFactory
	sessionCache *memory.GuestSessionCache
	logger       logger.ILogger
}

func NewGuestSessionVerifier(
	uowFactory unitofwork.RepositoryFactory,
	sessionCache *memory.GuestSessionCache,
	log logger.ILogger,
) IGuestSessionVerifier {
	return &guestSessionVerifier{
		uowFactory:   uowFactory,
		sessionCache: sessionCache,
		logger:       log,
	}
}

// VerifyGuest resolves the guest from cache, falling back to the database on
// a miss. Expired guests are evicted and rejected; a valid DB hit refills the
// cache.
func (v *guestSessionVerifier) VerifyGuest(ctx context.Context, guestId uuid.UUID) bool {
	if guest, found := v.sessionCache.Get(guestId); found {
		if guestExpired(guest.ExpiresAt) {
			v.sessionCache.Delete(guestId)
			return false
		}
		return true
	}

	uow := v.uowFactory.NewUnitOfWork(ctx)
	guest, err := uow.GuestRepository().FindById(ctx, guestId)
	if err != nil {
		v.logger.Error("Auth", "Failed to load guest", map[string]interface{}{
			"guest_id": guestId,
			"error":    err.Error(),
		})
		return false
	}
	if guest == nil || guestExpired(guest.ExpiresAt) {
		return false
	}

	v.sessionCache.Save(guest)
	return true
}

func guestExpired(expiresAt *time.Time) bool {
	return expiresAt != nil && expiresAt.Before(time.Now())
}
