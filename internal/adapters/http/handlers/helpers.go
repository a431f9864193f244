package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/gentlify/pacify/internal/adapters/http/dto"
	"github.com/gentlify/pacify/internal/adapters/http/encoding"
	"github.com/gentlify/pacify/internal/domain"
)

// User-facing messages shared by the chat endpoints.
const (
	msgOutOfScope   = "Diese Anfrage liegt außerhalb meines Beratungsbereichs"
	msgParseFailure = "Fehler beim Verarbeiten der Antwort"
	msgRateLimited  = "Zu viele Anfragen. Bitte versuche es in einem Moment erneut."
	msgUnexpected   = "Ein unerwarteter Fehler ist aufgetreten"
	msgEmptyMessage = "Bitte gib eine Nachricht ein"
	msgTooLong      = "Die Nachricht darf höchstens 1000 Zeichen lang sein"
	msgNoIntents    = "Bitte wähle mindestens ein Anliegen aus"
	msgBadIntent    = "Unbekanntes Anliegen"
	msgBadProfile   = "Das Kinderprofil ist ungültig"
	msgNoProfile    = "Kinderprofil nicht gefunden"
)

// respond writes data in the format negotiated from the Accept header.
func respond(w http.ResponseWriter, r *http.Request, data any, status int) {
	if err := encoding.Write(w, r, status, data); err != nil {
		log.Printf("Failed to encode response for %s: %v", r.URL.Path, err)
	}
}

// respondError writes an error response
func respondError(w http.ResponseWriter, r *http.Request, errorType string, message string, status int) {
	respond(w, r, dto.NewErrorResponse(errorType, message, status), status)
}

// errorStatus maps a domain error to its HTTP status and error type.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrScopeRejected):
		return http.StatusBadRequest, "scope_rejected"
	case domain.IsValidationFailure(err):
		return http.StatusInternalServerError, "parsing_error"
	case errors.Is(err, domain.ErrLLMRateLimited):
		return http.StatusTooManyRequests, "rate_limit_error"
	case errors.Is(err, pgx.ErrNoRows),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrMessageNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrAlreadySubscribed):
		return http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidProfile),
		errors.Is(err, domain.ErrInvalidIntent),
		errors.Is(err, domain.ErrNoIntents),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidFeedback),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrUnsupportedStateVersion),
		errors.Is(err, domain.ErrEmptyContent):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, domain.ErrLLMUnavailable):
		return http.StatusServiceUnavailable, "service_unavailable"
	}
	return http.StatusInternalServerError, "internal_error"
}

// respondDomainError logs err and writes the mapped error response.
// Server errors get a generic message.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error, action string) {
	status, errType := errorStatus(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		log.Printf("Failed to %s: %v", action, err)
		message = "Failed to " + action
	}
	respondError(w, r, errType, message, status)
}

// parseIntQuery parses an integer query parameter with a default value
func parseIntQuery(r *http.Request, name string, defaultValue int) int {
	value := r.URL.Query().Get(name)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// validateURLParam validates and returns a URL parameter
func validateURLParam(r *http.Request, w http.ResponseWriter, paramName, errorField string) (string, bool) {
	value := chi.URLParam(r, paramName)
	if value == "" {
		respondError(w, r, "invalid_request", errorField+" is required", http.StatusBadRequest)
		return "", false
	}
	return value, true
}

// decodeBody decodes a JSON or msgpack request body with error handling
func decodeBody[T any](r *http.Request, w http.ResponseWriter) (*T, bool) {
	var req T
	if err := encoding.Read(w, r, &req); err != nil {
		respondError(w, r, "invalid_request", "Invalid request body", http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}
