package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/advisor/internal/models"
	"github.com/ternarybob/advisor/internal/router"
	"github.com/ternarybob/advisor/internal/session"
)

// AskRequest is the POST /api/ask payload.
type AskRequest struct {
	Question  string `json:"question" validate:"required,min=1,max=1000"`
	SessionID string `json:"session_id" validate:"omitempty,uuid4"`
}

// AskResponse wraps a routed answer with the session it belongs to.
type AskResponse struct {
	SessionID    string      `json:"session_id"`
	ResponseType string      `json:"response_type"`
	Symbol       string      `json:"symbol,omitempty"`
	Message      string      `json:"message"`
	Data         interface{} `json:"data,omitempty"`
}

// AskHandler handles natural language stock questions
type AskHandler struct {
	router   *router.Router
	sessions *session.Store
	validate *validator.Validate
	logger   arbor.ILogger
}

// NewAskHandler creates a new AskHandler
func NewAskHandler(qr *router.Router, sessions *session.Store, logger arbor.ILogger) *AskHandler {
	return &AskHandler{
		router:   qr,
		sessions: sessions,
		validate: validator.New(),
		logger:   logger,
	}
}

// AskHandler handles POST /api/ask
func (h *AskHandler) AskHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to decode ask request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.logger.Warn().Err(err).Msg("Ask request failed validation")
		WriteError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	sess := h.sessions.GetOrCreate(req.SessionID)

	h.logger.Info().
		Str("session_id", sess.ID).
		Int("question_length", len(req.Question)).
		Msg("Processing question")

	resp := h.router.Route(r.Context(), sess, req.Question)

	WriteJSON(w, http.StatusOK, toAskResponse(sess.ID, resp))
}

func toAskResponse(sessionID string, resp *models.Response) AskResponse {
	return AskResponse{
		SessionID:    sessionID,
		ResponseType: string(resp.Type),
		Symbol:       resp.Symbol,
		Message:      resp.Message,
		Data:         resp.Data,
	}
}
