package handlers

import (
	"net/http"

	"github.com/gentlify/pacify/internal/adapters/http/dto"
	"github.com/gentlify/pacify/internal/adapters/http/middleware"
	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/ports"
)

type HistoryHandler struct {
	history ports.HistoryUseCase
}

func NewHistoryHandler(history ports.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// List handles GET /api/v1/history?session_id=&limit=
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		respondError(w, r, "invalid_request", "session_id is required", http.StatusBadRequest)
		return
	}
	limit := parseIntQuery(r, "limit", 0)

	messages, err := h.history.List(r.Context(), middleware.GetUserID(r.Context()), sessionID, limit)
	if err != nil {
		respondDomainError(w, r, err, "list messages")
		return
	}
	respond(w, r, dto.FromMessageModelList(sessionID, messages), http.StatusOK)
}

// ClearSession handles DELETE /api/v1/history/{sessionId}
func (h *HistoryHandler) ClearSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := validateURLParam(r, w, "sessionId", "Session ID")
	if !ok {
		return
	}
	if err := h.history.ClearSession(r.Context(), middleware.GetUserID(r.Context()), sessionID); err != nil {
		respondDomainError(w, r, err, "clear session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Feedback handles POST /api/v1/messages/{id}/feedback
func (h *HistoryHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	messageID, ok := validateURLParam(r, w, "id", "Message ID")
	if !ok {
		return
	}
	req, ok := decodeBody[dto.FeedbackRequest](r, w)
	if !ok {
		return
	}

	message, err := h.history.Feedback(r.Context(), middleware.GetUserID(r.Context()), messageID, models.Feedback(req.Feedback))
	if err != nil {
		respondDomainError(w, r, err, "record feedback")
		return
	}
	respond(w, r, dto.FromMessageModel(message), http.StatusOK)
}
