package cache

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/ternarybob/advisor/internal/interfaces"
)

// memoryEntry mirrors the persistent cache entry shape.
type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryCache is a process-local ResponseCache used by console mode, where
// spinning up the persistent store for a single conversation is not worth it.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryCache creates an empty in-process cache.
func NewMemoryCache() interfaces.ResponseCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

// Get decodes the payload for key when present and unexpired.
func (c *MemoryCache) Get(key string, out interface{}) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(entry.payload, out); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores value under key for the given TTL.
func (c *MemoryCache) Set(key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[key] = memoryEntry{payload: payload, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Delete removes a key.
func (c *MemoryCache) Delete(key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Sweep removes expired entries.
func (c *MemoryCache) Sweep() (int, error) {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed, nil
}
