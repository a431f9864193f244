package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gentlify/pacify/internal/adapters/http/dto"
	"github.com/gentlify/pacify/internal/domain"
	"github.com/gentlify/pacify/internal/domain/models"
)

func testSignup() *models.NewsletterSignup {
	return &models.NewsletterSignup{
		ID:        "pn_1",
		Email:     "eltern@example.com",
		Source:    models.DefaultNewsletterSource,
		CreatedAt: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestNewsletterHandler_Subscribe(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantSuccess bool
	}{
		{"subscribed", nil, http.StatusOK, dto.NewsletterSuccessMessage, true},
		{"duplicate", domain.NewDomainErrorWithCode(domain.ErrAlreadySubscribed, "dup", "already_subscribed"), http.StatusConflict, dto.NewsletterDuplicateMessage, false},
		{"invalid email", domain.NewDomainErrorWithCode(domain.ErrInvalidEmail, "bad", "invalid_email"), http.StatusBadRequest, dto.NewsletterInvalidMessage, false},
		{"storage failure", fmt.Errorf("failed to store subscription: %w", errTest), http.StatusInternalServerError, dto.NewsletterFailureMessage, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockNewsletterUseCase{signup: testSignup(), err: tt.err}
			handler := NewNewsletterHandler(uc)

			rr := httptest.NewRecorder()
			handler.Subscribe(rr, jsonRequest(t, "POST", "/api/newsletter", map[string]string{
				"email": "Eltern@Example.com", "name": "Sam", "source": "footer",
			}))

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			resp := decodeResponse[dto.NewsletterResponse](t, rr)
			if resp.Success != tt.wantSuccess || resp.Message != tt.wantMessage {
				t.Errorf("unexpected response %+v", resp)
			}
			if tt.wantSuccess && (resp.Data == nil || resp.Data.CreatedAt != "2024-02-01T08:00:00Z") {
				t.Errorf("unexpected data %+v", resp.Data)
			}
			if uc.last.Source != "footer" || uc.last.Name != "Sam" {
				t.Errorf("unexpected input %+v", uc.last)
			}
		})
	}
}

func TestNewsletterHandler_Status(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		err            error
		wantStatus     int
		wantSubscribed bool
	}{
		{"subscribed", "?email=eltern@example.com", nil, http.StatusOK, true},
		{"unknown email", "?email=neu@example.com", domain.NewDomainError(domain.ErrNotFound, "subscription"), http.StatusOK, false},
		{"missing email", "", nil, http.StatusBadRequest, false},
		{"lookup failure", "?email=eltern@example.com", errTest, http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewNewsletterHandler(&mockNewsletterUseCase{signup: testSignup(), err: tt.err})

			rr := httptest.NewRecorder()
			handler.Status(rr, httptest.NewRequest("GET", "/api/newsletter"+tt.query, nil))

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			resp := decodeResponse[dto.NewsletterStatusResponse](t, rr)
			if resp.Subscribed != tt.wantSubscribed {
				t.Errorf("expected subscribed=%v, got %v", tt.wantSubscribed, resp.Subscribed)
			}
		})
	}
}
