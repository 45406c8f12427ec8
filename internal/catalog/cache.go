package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultCacheTTL  = 30 * time.Minute
	DefaultCacheSize = 500
)

// ResponseCache holds raw TMDB response bodies for one session.
// Entries expire after the TTL; when full the least recently used key goes first.
// Safe for use from concurrent commands.
type ResponseCache struct {
	lru *expirable.LRU[string, []byte]
}

// NewResponseCache creates a cache; non-positive arguments fall back to defaults
func NewResponseCache(size int, ttl time.Duration) *ResponseCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ResponseCache{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (c *ResponseCache) Get(key string) ([]byte, bool) {
	return c.lru.Get(key)
}

func (c *ResponseCache) Set(key string, body []byte) {
	c.lru.Add(key, body)
}

// Clear drops every entry, e.g. when the profile or language changes
func (c *ResponseCache) Clear() {
	c.lru.Purge()
}

func (c *ResponseCache) Len() int {
	return c.lru.Len()
}
