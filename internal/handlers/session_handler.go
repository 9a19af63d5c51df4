package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/advisor/internal/session"
)

// SessionInfo is the wire representation of a conversation session.
type SessionInfo struct {
	SessionID     string    `json:"session_id"`
	CreatedAt     time.Time `json:"created_at"`
	LastActive    time.Time `json:"last_active"`
	ContextSymbol string    `json:"context_symbol,omitempty"`
}

// SessionHandler handles conversation session lifecycle requests
type SessionHandler struct {
	sessions *session.Store
	logger   arbor.ILogger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessions *session.Store, logger arbor.ILogger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// CreateHandler handles POST /api/sessions
func (h *SessionHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	sess := h.sessions.Create()
	h.logger.Debug().Str("session_id", sess.ID).Msg("Created session")

	WriteJSON(w, http.StatusCreated, sessionInfo(sess))
}

// SessionRoutesHandler handles GET/DELETE /api/sessions/{id}
func (h *SessionHandler) SessionRoutesHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "Session ID required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getSession(w, id)
	case http.MethodDelete:
		h.deleteSession(w, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SessionHandler) getSession(w http.ResponseWriter, id string) {
	sess := h.sessions.Get(id)
	if sess == nil {
		WriteError(w, http.StatusNotFound, "Session not found: "+id)
		return
	}
	WriteJSON(w, http.StatusOK, sessionInfo(sess))
}

func (h *SessionHandler) deleteSession(w http.ResponseWriter, id string) {
	if h.sessions.Get(id) == nil {
		WriteError(w, http.StatusNotFound, "Session not found: "+id)
		return
	}
	h.sessions.Delete(id)
	h.logger.Debug().Str("session_id", id).Msg("Deleted session")
	WriteSuccess(w, "Session deleted")
}

func sessionInfo(sess *session.Session) SessionInfo {
	return SessionInfo{
		SessionID:     sess.ID,
		CreatedAt:     sess.CreatedAt,
		LastActive:    sess.LastActive(),
		ContextSymbol: sess.OptionContext().Symbol,
	}
}
