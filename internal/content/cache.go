package content

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// cacheEntry represents cached generated text.
type cacheEntry struct {
	expiry time.Time
	text   string
}

// promptCache provides thread-safe caching keyed on prompt hash. Repeat
// generation for the same prompt is common when a batch re-runs.
type promptCache struct {
	entries map[string]cacheEntry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
}

// newPromptCache creates a new cache with the specified TTL.
func newPromptCache(ttl time.Duration) *promptCache {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	cache := &promptCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go cache.cleanup()

	return cache
}

// cacheKey hashes a prompt into a stable cache key.
func cacheKey(prompt string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(prompt)))
}

// get retrieves cached text if present and unexpired.
func (c *promptCache) get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists || time.Now().After(entry.expiry) {
		return "", false
	}
	return entry.text, true
}

// set stores generated text in the cache.
func (c *promptCache) set(key, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		text:   text,
		expiry: time.Now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *promptCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiry) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// Close stops the cleanup goroutine.
func (c *promptCache) Close() {
	close(c.stopCh)
}
