package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name              string
		allowed           []string
		method            string
		origin            string
		preflight         bool
		expectOrigin      string
		expectCredentials string
		expectStatus      int
	}{
		{
			name:              "listed origin gets credentials",
			allowed:           []string{"http://localhost:3000"},
			method:            http.MethodPost,
			origin:            "http://localhost:3000",
			expectOrigin:      "http://localhost:3000",
			expectCredentials: "true",
			expectStatus:      http.StatusOK,
		},
		{
			name:              "trailing slash in config is ignored",
			allowed:           []string{"https://pacify.app/"},
			method:            http.MethodGet,
			origin:            "https://pacify.app",
			expectOrigin:      "https://pacify.app",
			expectCredentials: "true",
			expectStatus:      http.StatusOK,
		},
		{
			name:         "wildcard allows any origin without credentials",
			allowed:      []string{"*"},
			method:       http.MethodGet,
			origin:       "https://elsewhere.example",
			expectOrigin: "*",
			expectStatus: http.StatusOK,
		},
		{
			name:         "unlisted origin still reaches handler",
			allowed:      []string{"http://localhost:3000"},
			method:       http.MethodGet,
			origin:       "https://evil.example",
			expectStatus: http.StatusOK,
		},
		{
			name:         "no origin header",
			allowed:      []string{"http://localhost:3000"},
			method:       http.MethodGet,
			expectStatus: http.StatusOK,
		},
		{
			name:              "preflight from listed origin",
			allowed:           []string{"http://localhost:3000"},
			method:            http.MethodOptions,
			origin:            "http://localhost:3000",
			preflight:         true,
			expectOrigin:      "http://localhost:3000",
			expectCredentials: "true",
			expectStatus:      http.StatusNoContent,
		},
		{
			name:         "preflight from unlisted origin",
			allowed:      []string{"http://localhost:3000"},
			method:       http.MethodOptions,
			origin:       "https://evil.example",
			preflight:    true,
			expectStatus: http.StatusForbidden,
		},
		{
			name:         "plain OPTIONS is not a preflight",
			allowed:      []string{"http://localhost:3000"},
			method:       http.MethodOptions,
			origin:       "https://evil.example",
			expectStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := CORS(tt.allowed)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(tt.method, "/api/v1/chat/unified", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectStatus {
				t.Errorf("expected status %d, got %d", tt.expectStatus, rr.Code)
			}
			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.expectOrigin {
				t.Errorf("expected Access-Control-Allow-Origin %q, got %q", tt.expectOrigin, got)
			}
			if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != tt.expectCredentials {
				t.Errorf("expected Access-Control-Allow-Credentials %q, got %q", tt.expectCredentials, got)
			}
			if got := rr.Header().Get("Vary"); got != "Origin" {
				t.Errorf("expected Vary: Origin, got %q", got)
			}
		})
	}
}

func TestCORS_PreflightAllowsUserHeader(t *testing.T) {
	handler := CORS([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight must not reach the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/profiles", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, UserIDHeader) {
		t.Errorf("expected %s in allowed headers, got %q", UserIDHeader, got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPut) {
		t.Errorf("expected PUT in allowed methods, got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Expose-Headers"); !strings.Contains(got, "Retry-After") {
		t.Errorf("expected Retry-After to be exposed, got %q", got)
	}
}
