// -----------------------------------------------------------------------
// Package session holds per-conversation state: the last option contract
// the caller asked about and the last response sent, which chart
// follow-ups ("daily", "weekly", "monthly") refer back to.
// -----------------------------------------------------------------------

package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ternarybob/advisor/internal/models"
)

// Session is one conversation. All accessors are safe for concurrent use;
// questions within a session are still expected to arrive one at a time.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu            sync.Mutex
	optionContext models.OptionContext
	lastResponse  *models.Response
	lastActive    time.Time
}

// OptionContext returns a copy of the remembered option contract.
func (s *Session) OptionContext() models.OptionContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.optionContext
}

// RememberOption merges newly extracted option details into the context.
// Present fields overwrite, absent fields keep their previous value.
func (s *Session) RememberOption(symbol string, e *models.ExtractedEntities) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.optionContext.Merge(symbol, e)
}

// FillFromContext fills gaps in the entities from the remembered contract.
func (s *Session) FillFromContext(e *models.ExtractedEntities) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.optionContext.Fill(e)
}

// LastResponse returns the most recent response, or nil for a fresh session.
func (s *Session) LastResponse() *models.Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResponse
}

// SetLastResponse records the response just sent and bumps activity.
func (s *Session) SetLastResponse(r *models.Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastResponse = r
	s.lastActive = time.Now()
}

// LastActive reports when the session last produced a response.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Store manages sessions by ID.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create allocates a new session with a generated ID.
func (st *Store) Create() *Session {
	s := &Session{
		ID:         uuid.New().String(),
		CreatedAt:  time.Now(),
		lastActive: time.Now(),
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session with the given ID, or nil.
func (st *Store) Get(id string) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[id]
}

// GetOrCreate returns the session with the given ID, creating a fresh one
// when the ID is empty or unknown.
func (st *Store) GetOrCreate(id string) *Session {
	if id != "" {
		if s := st.Get(id); s != nil {
			return s
		}
	}
	return st.Create()
}

// Delete removes a session. Unknown IDs are ignored.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Count returns the number of live sessions.
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// PruneIdle removes sessions inactive for longer than maxIdle and returns
// how many were removed.
func (st *Store) PruneIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if s.LastActive().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}
