package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// WebSocket chat
	mux.HandleFunc("/ws", s.app.WSHandler.HandleWebSocket)

	// API routes - questions
	mux.HandleFunc("/api/ask", s.app.AskHandler.AskHandler) // POST - route a natural language question

	// API routes - sessions
	mux.HandleFunc("/api/sessions", s.app.SessionHandler.CreateHandler)        // POST - create session
	mux.HandleFunc("/api/sessions/", s.app.SessionHandler.SessionRoutesHandler) // GET/DELETE /{id}

	// API routes - status
	mux.HandleFunc("/api/status", s.app.StatusHandler.GetStatusHandler) // GET - application status

	return mux
}
