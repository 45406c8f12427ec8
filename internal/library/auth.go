package library

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultAuthTTL bounds how long a resolved user id is trusted
const DefaultAuthTTL = 5 * time.Minute

// AuthCache remembers the signed-in user id for one session.
// Concurrent lookups share a single in-flight resolution.
type AuthCache struct {
	ttl     time.Duration
	now     func() time.Time
	resolve func(ctx context.Context) (string, error)

	mu        sync.Mutex
	userID    string
	fetchedAt time.Time
	group     singleflight.Group
}

// NewAuthCache wraps resolve; a failed resolve is treated as signed out
func NewAuthCache(ttl time.Duration, resolve func(ctx context.Context) (string, error)) *AuthCache {
	if ttl <= 0 {
		ttl = DefaultAuthTTL
	}
	return &AuthCache{ttl: ttl, now: time.Now, resolve: resolve}
}

// UserID returns the cached id or resolves it; "" means not signed in
func (a *AuthCache) UserID(ctx context.Context) string {
	a.mu.Lock()
	if a.userID != "" && a.now().Sub(a.fetchedAt) < a.ttl {
		id := a.userID
		a.mu.Unlock()
		return id
	}
	a.mu.Unlock()

	v, _, _ := a.group.Do("user", func() (any, error) {
		id, err := a.resolve(ctx)
		a.mu.Lock()
		defer a.mu.Unlock()
		if err != nil {
			a.userID, a.fetchedAt = "", time.Time{}
			return "", nil
		}
		a.userID, a.fetchedAt = id, a.now()
		return id, nil
	})
	return v.(string)
}

// Invalidate forgets the cached id, e.g. after sign-in or sign-out
func (a *AuthCache) Invalidate() {
	a.mu.Lock()
	a.userID, a.fetchedAt = "", time.Time{}
	a.mu.Unlock()
	a.group.Forget("user")
}
