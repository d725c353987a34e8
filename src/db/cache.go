package db

import (
	"time"

	"spendlog-server/src/models"

	"github.com/dgraph-io/ristretto"
)

// IdentityCache keeps recently resolved users keyed by login so the auth
// middleware does not hit the users table on every request.
type IdentityCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewIdentityCache returns nil when ttl is not positive; a nil cache is a
// valid, always-missing cache.
func NewIdentityCache(ttl time.Duration) (*IdentityCache, error) {
	if ttl <= 0 {
		return nil, nil
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return nil, err
	}
	return &IdentityCache{cache: c, ttl: ttl}, nil
}

func identityKey(login string) string { return "user:" + login }

func (c *IdentityCache) Get(login string) (*models.User, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.cache.Get(identityKey(login))
	if !ok {
		return nil, false
	}
	u, ok := v.(models.User)
	if !ok {
		return nil, false
	}
	return &u, true
}

// Set stores a copy of u so later mutations by callers do not leak in.
func (c *IdentityCache) Set(u *models.User) {
	if c == nil || u == nil {
		return
	}
	c.cache.SetWithTTL(identityKey(u.Username), *u, 1, c.ttl)
	c.cache.Wait()
}

func (c *IdentityCache) Del(login string) {
	if c == nil {
		return
	}
	c.cache.Del(identityKey(login))
}

func (c *IdentityCache) Close() {
	if c == nil {
		return
	}
	c.cache.Close()
}
