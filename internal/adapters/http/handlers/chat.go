package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gentlify/pacify/internal/adapters/http/dto"
	"github.com/gentlify/pacify/internal/adapters/http/middleware"
	"github.com/gentlify/pacify/internal/domain"
	"github.com/gentlify/pacify/internal/ports"
	"github.com/gentlify/pacify/internal/prompt"
)

var errMessageTooLong = domain.NewDomainErrorWithCode(domain.ErrInvalidInput, msgTooLong, "message_too_long")

// ChatHandler serves the four chat variants. Each use case is bound to its
// mode.
type ChatHandler struct {
	useCases map[prompt.Mode]ports.ChatUseCase
}

func NewChatHandler(mirror, expert, unified, classic ports.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		useCases: map[prompt.Mode]ports.ChatUseCase{
			prompt.ModeMirror:  mirror,
			prompt.ModeExpert:  expert,
			prompt.ModeUnified: unified,
			prompt.ModeClassic: classic,
		},
	}
}

// Mirror handles POST /api/v1/chat/mirror
func (h *ChatHandler) Mirror(w http.ResponseWriter, r *http.Request) {
	h.handlePhase(w, r, prompt.ModeMirror)
}

// Expert handles POST /api/v1/chat/expert
func (h *ChatHandler) Expert(w http.ResponseWriter, r *http.Request) {
	h.handlePhase(w, r, prompt.ModeExpert)
}

// Classic handles POST /api/v1/chat
func (h *ChatHandler) Classic(w http.ResponseWriter, r *http.Request) {
	h.handlePhase(w, r, prompt.ModeClassic)
}

// Unified handles POST /api/v1/chat/unified
func (h *ChatHandler) Unified(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBody[dto.ChatRequest](r, w)
	if !ok {
		return
	}

	out, err := h.run(r.Context(), prompt.ModeUnified, req, middleware.GetUserID(r.Context()))
	resp, status := unifiedResult(out, err)
	respond(w, r, resp, status)
}

func (h *ChatHandler) handlePhase(w http.ResponseWriter, r *http.Request, mode prompt.Mode) {
	start := time.Now()
	req, ok := decodeBody[dto.ChatRequest](r, w)
	if !ok {
		return
	}

	out, err := h.run(r.Context(), mode, req, middleware.GetUserID(r.Context()))
	resp, status := phaseResult(mode, out, err, time.Since(start))
	respond(w, r, resp, status)
}

// run validates the request and executes the use case for mode.
func (h *ChatHandler) run(ctx context.Context, mode prompt.Mode, req *dto.ChatRequest, userID string) (*ports.ChatOutput, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, domain.ErrEmptyMessage
	}
	if utf8.RuneCountInString(req.Message) > dto.MaxMessageLength {
		return nil, errMessageTooLong
	}
	if req.ChildProfile != nil {
		if err := req.ChildProfile.Validate(); err != nil {
			return nil, err
		}
	}
	intents, err := req.Intents(mode)
	if err != nil {
		return nil, err
	}

	uc, ok := h.useCases[mode]
	if !ok || uc == nil {
		return nil, domain.NewDomainError(domain.ErrInvalidInput, "unknown chat mode "+string(mode))
	}
	return uc.Execute(ctx, req.ToInput(userID, intents))
}

// phaseResult builds the envelope of the mirror, expert and classic endpoints.
func phaseResult(mode prompt.Mode, out *ports.ChatOutput, err error, elapsed time.Duration) (*dto.PhaseResponse, int) {
	if err == nil {
		return dto.NewPhaseResponse(out), http.StatusOK
	}

	status, _ := errorStatus(err)
	resp := &dto.PhaseResponse{
		Success:      false,
		Error:        chatErrorMessage(err, status),
		ResponseTime: elapsed.Milliseconds(),
	}
	if out != nil {
		check := out.ScopeCheck
		resp.ScopeCheck = &check
		resp.SessionID = out.SessionID
	}
	if status >= http.StatusInternalServerError {
		log.Printf("Chat %s failed: %v", mode, err)
	}
	return resp, status
}

// unifiedResult builds the unified answer. Failures keep the answer shape
// with the error flag set.
func unifiedResult(out *ports.ChatOutput, err error) (*dto.UnifiedResponse, int) {
	if err == nil {
		return dto.NewUnifiedResponse(out), http.StatusOK
	}

	status, _ := errorStatus(err)
	resp := dto.NewUnifiedFailure()
	switch {
	case status == http.StatusTooManyRequests:
		resp.Content = msgRateLimited
	case status < http.StatusInternalServerError:
		resp.Content = chatErrorMessage(err, status)
	default:
		log.Printf("Chat unified failed: %v", err)
		status = http.StatusInternalServerError
	}
	return resp, status
}

// chatErrorMessage is the German message shown to parents.
func chatErrorMessage(err error, status int) string {
	switch {
	case errors.Is(err, domain.ErrScopeRejected):
		return msgOutOfScope
	case domain.IsValidationFailure(err):
		return msgParseFailure
	case status == http.StatusTooManyRequests:
		return msgRateLimited
	case errors.Is(err, domain.ErrEmptyMessage):
		return msgEmptyMessage
	case errors.Is(err, errMessageTooLong):
		return msgTooLong
	case errors.Is(err, domain.ErrNoIntents):
		return msgNoIntents
	case errors.Is(err, domain.ErrInvalidIntent):
		return msgBadIntent
	case errors.Is(err, domain.ErrInvalidProfile):
		return msgBadProfile
	case errors.Is(err, domain.ErrProfileNotFound):
		return msgNoProfile
	}
	return msgUnexpected
}
