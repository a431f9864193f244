package dto

import (
	"time"

	"github.com/gentlify/pacify/internal/domain/models"
)

type NewsletterRequest struct {
	Email  string `json:"email" msgpack:"email"`
	Name   string `json:"name,omitempty" msgpack:"name,omitempty"`
	Source string `json:"source,omitempty" msgpack:"source,omitempty"`
}

type NewsletterData struct {
	ID        string `json:"id" msgpack:"id"`
	Email     string `json:"email" msgpack:"email"`
	CreatedAt string `json:"created_at" msgpack:"created_at"`
}

type NewsletterResponse struct {
	Success bool            `json:"success" msgpack:"success"`
	Message string          `json:"message" msgpack:"message"`
	Data    *NewsletterData `json:"data,omitempty" msgpack:"data,omitempty"`
}

type NewsletterStatusResponse struct {
	Subscribed bool   `json:"subscribed" msgpack:"subscribed"`
	Confirmed  bool   `json:"confirmed,omitempty" msgpack:"confirmed,omitempty"`
	CreatedAt  string `json:"created_at,omitempty" msgpack:"created_at,omitempty"`
}

const (
	NewsletterSuccessMessage   = "Vielen Dank! Du wurdest erfolgreich für den Newsletter angemeldet."
	NewsletterDuplicateMessage = "Diese E-Mail-Adresse ist bereits für den Newsletter angemeldet."
	NewsletterInvalidMessage   = "Bitte gib eine gültige E-Mail-Adresse ein"
	NewsletterFailureMessage   = "Ein unerwarteter Fehler ist aufgetreten"
)

func NewNewsletterResponse(s *models.NewsletterSignup) *NewsletterResponse {
	return &NewsletterResponse{
		Success: true,
		Message: NewsletterSuccessMessage,
		Data: &NewsletterData{
			ID:        s.ID,
			Email:     s.Email,
			CreatedAt: s.CreatedAt.Format(time.RFC3339),
		},
	}
}

func NewNewsletterStatus(s *models.NewsletterSignup) *NewsletterStatusResponse {
	if s == nil {
		return &NewsletterStatusResponse{Subscribed: false}
	}
	return &NewsletterStatusResponse{
		Subscribed: true,
		Confirmed:  s.Confirmed,
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
	}
}
