package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/advisor/internal/models"
)

func TestStoreCreateAndGet(t *testing.T) {
	st := NewStore()

	s := st.Create()
	require.NotEmpty(t, s.ID)
	assert.Equal(t, s, st.Get(s.ID))
	assert.Nil(t, st.Get("unknown"))
	assert.Equal(t, 1, st.Count())
}

func TestStoreGetOrCreate(t *testing.T) {
	st := NewStore()

	s := st.GetOrCreate("")
	require.NotNil(t, s)
	assert.Equal(t, s, st.GetOrCreate(s.ID))

	other := st.GetOrCreate("no-such-session")
	assert.NotEqual(t, s.ID, other.ID)
	assert.Equal(t, 2, st.Count())
}

func TestStoreDelete(t *testing.T) {
	st := NewStore()
	s := st.Create()

	st.Delete(s.ID)
	assert.Nil(t, st.Get(s.ID))
	st.Delete(s.ID) // second delete is a no-op
}

func TestSessionOptionContext(t *testing.T) {
	st := NewStore()
	s := st.Create()

	strike := 440.0
	s.RememberOption("TSLA", &models.ExtractedEntities{
		StrikePrice: &strike,
		OptionType:  models.OptionTypeCall,
	})

	ctx := s.OptionContext()
	require.Equal(t, "TSLA", ctx.Symbol)
	require.NotNil(t, ctx.StrikePrice)
	assert.Equal(t, 440.0, *ctx.StrikePrice)
	assert.Equal(t, models.OptionTypeCall, ctx.OptionType)

	// A later question that only names the type keeps the earlier strike.
	ents := &models.ExtractedEntities{OptionType: models.OptionTypePut, IsOptionsQuery: true, IsPersonalQuery: true}
	s.FillFromContext(ents)
	require.NotNil(t, ents.StrikePrice)
	assert.Equal(t, 440.0, *ents.StrikePrice)
	assert.Equal(t, models.OptionTypePut, ents.OptionType)
}

func TestSessionLastResponse(t *testing.T) {
	st := NewStore()
	s := st.Create()

	assert.Nil(t, s.LastResponse())
	r := &models.Response{Type: models.ResponseTypeChart, Symbol: "AAPL"}
	s.SetLastResponse(r)
	assert.Equal(t, r, s.LastResponse())
}

func TestStorePruneIdle(t *testing.T) {
	st := NewStore()
	stale := st.Create()
	stale.mu.Lock()
	stale.lastActive = time.Now().Add(-time.Hour)
	stale.mu.Unlock()
	fresh := st.Create()

	removed := st.PruneIdle(30 * time.Minute)
	assert.Equal(t, 1, removed)
	assert.Nil(t, st.Get(stale.ID))
	assert.NotNil(t, st.Get(fresh.ID))
}
