package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache()

	type payload struct {
		Symbol string
		Price  float64
	}
	require.NoError(t, c.Set("quote_TSLA", payload{Symbol: "TSLA", Price: 412.35}, time.Minute))

	var got payload
	ok, err := c.Get("quote_TSLA", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "TSLA", got.Symbol)
	assert.Equal(t, 412.35, got.Price)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache()

	var out string
	ok, err := c.Get("missing", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	require.NoError(t, c.Set("short", "value", -time.Second))

	var out string
	ok, err := c.Get("short", &out)
	require.NoError(t, err)
	assert.False(t, ok)

	removed, err := c.Sweep()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache()
	require.NoError(t, c.Set("key", "value", time.Minute))
	require.NoError(t, c.Delete("key"))

	var out string
	ok, _ := c.Get("key", &out)
	assert.False(t, ok)
	require.NoError(t, c.Delete("key")) // second delete is a no-op
}
