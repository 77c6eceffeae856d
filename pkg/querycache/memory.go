package querycache

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// MemoryCache is the in-process Cache used in mock mode and in tests. Expiry
// is checked lazily on Get; StartSweeper bounds memory by evicting expired
// entries in the background.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	// Now is swappable so tests can drive TTL expiry deterministically.
	Now func() time.Time
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: map[string]memoryEntry{},
		Now:     time.Now,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.Now().After(entry.expiresAt) {
		return "", false
	}

	return entry.value, true
}

func (c *MemoryCache) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{
		value:     value,
		expiresAt: c.Now().Add(ttl),
	}
}

func (c *MemoryCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

func (c *MemoryCache) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = map[string]memoryEntry{}
}

// StartSweeper evicts expired entries every interval until the returned stop
// function is called.
func (c *MemoryCache) StartSweeper(interval time.Duration) func() {
	stop := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(stop) })
	}
}

func (c *MemoryCache) sweep() {
	now := c.Now()
	evicted := 0

	c.mu.Lock()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	c.mu.Unlock()

	if evicted > 0 {
		log.Debug().Int("evicted", evicted).Msg("Query cache sweep")
	}
}
