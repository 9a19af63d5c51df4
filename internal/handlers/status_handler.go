package handlers

import (
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/advisor/internal/common"
	"github.com/ternarybob/advisor/internal/session"
)

// StatusHandler handles HTTP requests for application status
type StatusHandler struct {
	sessions      *session.Store
	quiverEnabled bool
	startedAt     time.Time
	logger        arbor.ILogger
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(sessions *session.Store, quiverEnabled bool, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{
		sessions:      sessions,
		quiverEnabled: quiverEnabled,
		startedAt:     time.Now(),
		logger:        logger,
	}
}

// GetStatusHandler handles GET /api/status
func (h *StatusHandler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"version":        common.GetVersion(),
		"build":          common.GetBuild(),
		"uptime":         time.Since(h.startedAt).Round(time.Second).String(),
		"sessions":       h.sessions.Count(),
		"goroutines":     common.GetGoroutineCount(),
		"quiver_enabled": h.quiverEnabled,
		"timestamp":      time.Now(),
	})
}
