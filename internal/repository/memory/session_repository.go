package memory

import (
	"time"

	"campus-share-be/pkg/navigation"

	"github.com/patrickmn/go-cache"
)

// Session is one signed-in user's browsing state.
type Session struct {
	UserId    string
	Navigator *navigation.Navigator
}

type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository keeps idle sessions for ttl and purges expired ones
// every cleanup interval.
func NewSessionRepository(ttl, cleanup time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: cache.New(ttl, cleanup),
	}
}

func (r *SessionRepository) Save(session *Session) {
	r.cache.Set(session.UserId, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(userId string) (*Session, bool) {
	if x, found := r.cache.Get(userId); found {
		return x.(*Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(userId string) {
	r.cache.Delete(userId)
}

// Each visits every live session.
func (r *SessionRepository) Each(fn func(*Session)) {
	for _, item := range r.cache.Items() {
		if s, ok := item.Object.(*Session); ok {
			fn(s)
		}
	}
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
