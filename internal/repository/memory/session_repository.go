package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"docuchat-be/internal/entity"
)

// GuestSessionCache keeps resolved guest identities in memory, keyed by
// guest id, so the session middleware does not hit the database on every
// request.
type GuestSessionCache struct {
	cache *cache.Cache
}

func NewGuestSessionCache() *GuestSessionCache {
	// Default expiration 1 hour, purge sweep every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &GuestSessionCache{
		cache: c,
	}
}

func (r *GuestSessionCache) Save(guest *entity.Guest) {
	r.cache.Set(guest.Id.String(), guest, cache.DefaultExpiration)
}

func (r *GuestSessionCache) Get(guestId uuid.UUID) (*entity.Guest, bool) {
	if x, found := r.cache.Get(guestId.String()); found {
		return x.(*entity.Guest), true
	}
	return nil, false
}

func (r *GuestSessionCache) Delete(guestId uuid.UUID) {
	r.cache.Delete(guestId.String())
}
