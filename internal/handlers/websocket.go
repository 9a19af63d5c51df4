package handlers

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/advisor/internal/models"
	"github.com/ternarybob/advisor/internal/router"
	"github.com/ternarybob/advisor/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// wsQuestion is an inbound websocket chat message.
type wsQuestion struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id,omitempty"`
}

// wsMessage is an outbound websocket frame.
type wsMessage struct {
	Type             string      `json:"type"` // "welcome" or "answer"
	ServerInstanceID string      `json:"server_instance_id,omitempty"`
	SessionID        string      `json:"session_id,omitempty"`
	ResponseType     string      `json:"response_type,omitempty"`
	Symbol           string      `json:"symbol,omitempty"`
	Message          string      `json:"message,omitempty"`
	Data             interface{} `json:"data,omitempty"`
}

// WebSocketHandler runs interactive question/answer chat over a websocket.
// Each connection is pinned to one conversation session so option context
// follow-ups work the same way they do over POST /api/ask.
type WebSocketHandler struct {
	router           *router.Router
	sessions         *session.Store
	logger           arbor.ILogger
	clients          map[*websocket.Conn]bool
	clientMutex      map[*websocket.Conn]*sync.Mutex
	mu               sync.RWMutex
	serverInstanceID string // Unique ID generated on startup - clients use to detect server restart
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(qr *router.Router, sessions *session.Store, logger arbor.ILogger) *WebSocketHandler {
	h := &WebSocketHandler{
		router:           qr,
		sessions:         sessions,
		logger:           logger,
		clients:          make(map[*websocket.Conn]bool),
		clientMutex:      make(map[*websocket.Conn]*sync.Mutex),
		serverInstanceID: uuid.New().String(),
	}

	logger.Info().Str("server_instance_id", h.serverInstanceID).Msg("WebSocket handler initialized with server instance ID")

	return h
}

// HandleWebSocket handles GET /ws upgrade requests
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	h.registerClient(conn)
	defer h.unregisterClient(conn)

	sess := h.sessions.GetOrCreate(r.URL.Query().Get("session_id"))

	h.logger.Debug().
		Str("session_id", sess.ID).
		Str("remote", r.RemoteAddr).
		Msg("WebSocket client connected")

	h.writeToClient(conn, wsMessage{
		Type:             "welcome",
		ServerInstanceID: h.serverInstanceID,
		SessionID:        sess.ID,
	})

	for {
		var q wsQuestion
		if err := conn.ReadJSON(&q); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn().Err(err).Msg("WebSocket read error")
			}
			break
		}

		// A client may switch sessions mid-connection.
		if q.SessionID != "" && q.SessionID != sess.ID {
			sess = h.sessions.GetOrCreate(q.SessionID)
		}

		resp := h.router.Route(r.Context(), sess, q.Question)
		h.writeToClient(conn, answerMessage(sess.ID, resp))
	}

	h.logger.Debug().
		Str("session_id", sess.ID).
		Msg("WebSocket client disconnected")
}

// ClientCount returns the number of connected websocket clients.
func (h *WebSocketHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *WebSocketHandler) registerClient(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.clientMutex[conn] = &sync.Mutex{}
	h.mu.Unlock()
}

func (h *WebSocketHandler) unregisterClient(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	delete(h.clientMutex, conn)
	h.mu.Unlock()
	conn.Close()
}

// writeToClient serializes writes per connection since gorilla/websocket
// allows only one concurrent writer.
func (h *WebSocketHandler) writeToClient(conn *websocket.Conn, msg wsMessage) {
	h.mu.RLock()
	mu := h.clientMutex[conn]
	h.mu.RUnlock()
	if mu == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()
	if err := conn.WriteJSON(msg); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to write websocket message")
	}
}

func answerMessage(sessionID string, resp *models.Response) wsMessage {
	return wsMessage{
		Type:         "answer",
		SessionID:    sessionID,
		ResponseType: string(resp.Type),
		Symbol:       resp.Symbol,
		Message:      resp.Message,
		Data:         resp.Data,
	}
}
