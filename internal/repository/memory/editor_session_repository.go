package memory

import (
	"time"

	"code-playground-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type EditorSessionRepository struct {
	cache *cache.Cache
}

func NewEditorSessionRepository() *EditorSessionRepository {
	// Sessions idle for an hour are dropped; expired entries are purged
	// every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &EditorSessionRepository{
		cache: c,
	}
}

func (r *EditorSessionRepository) Save(session *store.EditorSession) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *EditorSessionRepository) Get(sessionID string) (*store.EditorSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.EditorSession), true
	}
	return nil, false
}

func (r *EditorSessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
