package badger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/advisor/internal/interfaces"
)

// CacheEntry is one cached API payload. Payload is the JSON encoding of the
// value handed to Set so entries stay schema-free across feed types.
type CacheEntry struct {
	Key       string `badgerhold:"key"`
	Payload   []byte
	CreatedAt time.Time
	ExpiresAt time.Time `badgerhold:"index"`
}

// CacheStorage implements ResponseCache on a Badger store.
type CacheStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewCacheStorage creates cache storage over the shared connection.
func NewCacheStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ResponseCache {
	return &CacheStorage{
		db:     db,
		logger: logger,
	}
}

// Get retrieves and decodes the payload for key. Expired entries are treated
// as missing and removed lazily.
func (s *CacheStorage) Get(key string, out interface{}) (bool, error) {
	var entry CacheEntry
	err := s.db.Store().Get(key, &entry)
	if err == badgerhold.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get cache entry: %w", err)
	}

	if time.Now().After(entry.ExpiresAt) {
		if err := s.db.Store().Delete(key, &CacheEntry{}); err != nil && err != badgerhold.ErrNotFound {
			s.logger.Warn().Str("key", key).Err(err).Msg("Failed to evict expired cache entry")
		}
		return false, nil
	}

	if err := json.Unmarshal(entry.Payload, out); err != nil {
		return false, fmt.Errorf("failed to decode cache payload: %w", err)
	}
	return true, nil
}

// Set stores value under key for the given TTL.
func (s *CacheStorage) Set(key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache payload: %w", err)
	}

	now := time.Now()
	entry := CacheEntry{
		Key:       key,
		Payload:   payload,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	if err := s.db.Store().Upsert(key, &entry); err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Delete removes a key. Missing keys are not an error.
func (s *CacheStorage) Delete(key string) error {
	err := s.db.Store().Delete(key, &CacheEntry{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Sweep removes every expired entry and returns how many were deleted.
func (s *CacheStorage) Sweep() (int, error) {
	var expired []CacheEntry
	err := s.db.Store().Find(&expired, badgerhold.Where("ExpiresAt").Lt(time.Now()))
	if err != nil {
		return 0, fmt.Errorf("failed to list expired cache entries: %w", err)
	}

	removed := 0
	for _, entry := range expired {
		if err := s.db.Store().Delete(entry.Key, &CacheEntry{}); err != nil {
			s.logger.Warn().Str("key", entry.Key).Err(err).Msg("Failed to delete expired cache entry")
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Debug().Int("count", removed).Msg("Swept expired cache entries")
	}
	return removed, nil
}
