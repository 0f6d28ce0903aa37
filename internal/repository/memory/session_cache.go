package memory

import (
	"time"

	"doc-collab-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// SessionCache sits in front of the relational session store so repeat turns
// on a hot session skip a DB roundtrip. Misses always fall through to the
// store; the cache is never authoritative for existence checks.
type SessionCache struct {
	cache *cache.Cache
}

func NewSessionCache() *SessionCache {
	// 1 hour default expiration, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionCache{
		cache: c,
	}
}

func (r *SessionCache) Save(session *entity.ChatSession) {
	r.cache.Set(session.Id.String(), session, cache.DefaultExpiration)
}

func (r *SessionCache) Get(sessionID string) (*entity.ChatSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*entity.ChatSession), true
	}
	return nil, false
}

func (r *SessionCache) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
