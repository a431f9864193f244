package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gentlify/pacify/internal/adapters/http/dto"
	"github.com/gentlify/pacify/internal/domain"
	"github.com/gentlify/pacify/internal/ports"
)

// NewsletterHandler serves the public signup endpoint of the landing page.
type NewsletterHandler struct {
	newsletter ports.NewsletterUseCase
}

func NewNewsletterHandler(newsletter ports.NewsletterUseCase) *NewsletterHandler {
	return &NewsletterHandler{newsletter: newsletter}
}

// Subscribe handles POST /api/newsletter
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBody[dto.NewsletterRequest](r, w)
	if !ok {
		return
	}

	signup, err := h.newsletter.Subscribe(r.Context(), &ports.SubscribeNewsletterInput{
		Email:  req.Email,
		Name:   req.Name,
		Source: req.Source,
	})
	switch {
	case err == nil:
		respond(w, r, dto.NewNewsletterResponse(signup), http.StatusOK)
	case errors.Is(err, domain.ErrAlreadySubscribed):
		respond(w, r, &dto.NewsletterResponse{Message: dto.NewsletterDuplicateMessage}, http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidEmail):
		respond(w, r, &dto.NewsletterResponse{Message: dto.NewsletterInvalidMessage}, http.StatusBadRequest)
	default:
		log.Printf("Newsletter signup failed: %v", err)
		respond(w, r, &dto.NewsletterResponse{Message: dto.NewsletterFailureMessage}, http.StatusInternalServerError)
	}
}

// Status handles GET /api/newsletter?email=
func (h *NewsletterHandler) Status(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		respondError(w, r, "invalid_request", "Email parameter required", http.StatusBadRequest)
		return
	}

	signup, err := h.newsletter.Status(r.Context(), email)
	switch {
	case err == nil:
		respond(w, r, dto.NewNewsletterStatus(signup), http.StatusOK)
	case errors.Is(err, domain.ErrNotFound):
		respond(w, r, dto.NewNewsletterStatus(nil), http.StatusOK)
	case errors.Is(err, domain.ErrInvalidEmail):
		respondError(w, r, "invalid_request", dto.NewsletterInvalidMessage, http.StatusBadRequest)
	default:
		log.Printf("Newsletter status lookup failed: %v", err)
		respondError(w, r, "internal_error", "Server error", http.StatusInternalServerError)
	}
}
