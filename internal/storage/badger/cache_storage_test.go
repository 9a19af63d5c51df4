package badger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/advisor/internal/common"
)

func newTestCache(t *testing.T) *CacheStorage {
	t.Helper()
	logger := arbor.NewLogger()
	db, err := NewBadgerDB(logger, &common.BadgerConfig{
		Path: filepath.Join(t.TempDir(), "cache"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewCacheStorage(db, logger).(*CacheStorage)
}

func TestCacheStorage_RoundTrip(t *testing.T) {
	cache := newTestCache(t)

	type payload struct {
		Symbol string  `json:"symbol"`
		Price  float64 `json:"price"`
	}

	require.NoError(t, cache.Set("quote_AAPL", payload{Symbol: "AAPL", Price: 187.5}, time.Minute))

	var got payload
	found, err := cache.Get("quote_AAPL", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, 187.5, got.Price)
}

func TestCacheStorage_Miss(t *testing.T) {
	cache := newTestCache(t)

	var got map[string]string
	found, err := cache.Get("quote_MSFT", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheStorage_ExpiredEntryIsMissing(t *testing.T) {
	cache := newTestCache(t)

	require.NoError(t, cache.Set("news_TSLA", []string{"headline"}, -time.Second))

	var got []string
	found, err := cache.Get("news_TSLA", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheStorage_Sweep(t *testing.T) {
	cache := newTestCache(t)

	require.NoError(t, cache.Set("stale_1", "a", -time.Minute))
	require.NoError(t, cache.Set("stale_2", "b", -time.Minute))
	require.NoError(t, cache.Set("fresh", "c", time.Hour))

	removed, err := cache.Sweep()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	var got string
	found, err := cache.Get("fresh", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "c", got)
}

func TestCacheStorage_Delete(t *testing.T) {
	cache := newTestCache(t)

	require.NoError(t, cache.Set("overview_NVDA", "data", time.Minute))
	require.NoError(t, cache.Delete("overview_NVDA"))
	require.NoError(t, cache.Delete("overview_NVDA")) // second delete is a no-op

	var got string
	found, err := cache.Get("overview_NVDA", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
