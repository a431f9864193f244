package models

import (
	"net/mail"
	"strings"
	"time"
)

const DefaultNewsletterSource = "landing_page"

type NewsletterSignup struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Source    string    `json:"source"`
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewNewsletterSignup(id, email, name, source string) *NewsletterSignup {
	if source == "" {
		source = DefaultNewsletterSource
	}
	now := time.Now().UTC()
	return &NewsletterSignup{
		ID:        id,
		Email:     NormalizeEmail(email),
		Name:      strings.TrimSpace(name),
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail accepts a bare address only, no display name.
func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email && strings.Contains(email, ".")
}
