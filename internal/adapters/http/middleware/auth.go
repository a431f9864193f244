package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gentlify/pacify/internal/adapters/http/dto"
	"github.com/gentlify/pacify/internal/adapters/http/encoding"
)

type contextKey string

const (
	UserIDContextKey contextKey = "user_id"
)

// UserIDHeader carries the caller's identity. It is set by the gateway in
// front of the service.
const UserIDHeader = "X-User-ID"

// Auth reads the user ID header. Requests without one stay anonymous: they
// can chat but nothing is stored for them.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		// Prevent injection attacks
		if !isValidUserID(userID) {
			log.Printf("HTTP 400: Invalid user ID format: %q (path=%s)", userID, r.URL.Path)
			encoding.Write(w, r, http.StatusBadRequest, dto.NewErrorResponse("invalid_request", "Invalid user ID format", http.StatusBadRequest))
			return
		}

		ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser rejects anonymous requests.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserID(r.Context()) == "" {
			encoding.Write(w, r, http.StatusUnauthorized, dto.NewErrorResponse("auth_error", UserIDHeader+" header is required", http.StatusUnauthorized))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUserID(ctx context.Context) string {
	userID, ok := ctx.Value(UserIDContextKey).(string)
	if !ok {
		return ""
	}
	return userID
}

// WithUserID is used by tests and the websocket handler.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

func isValidUserID(userID string) bool {
	if userID == "" || len(userID) > 255 {
		return false
	}

	for _, ch := range userID {
		if !((ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') ||
			ch == '-' || ch == '_' || ch == '.' || ch == '@') {
			return false
		}
	}

	return true
}
