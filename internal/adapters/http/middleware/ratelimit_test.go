package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type fakeCounter struct {
	counts map[string]int64
	err    error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: make(map[string]int64)}
}

func (c *fakeCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.counts[key]++
	return c.counts[key], nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit_BlocksAfterLimit(t *testing.T) {
	counter := newFakeCounter()
	handler := RateLimit(counter, 2, time.Minute)(okHandler())

	var codes []int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/api/v1/chat/mirror", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)

		if i == 2 {
			if rec.Header().Get("Retry-After") != "60" {
				t.Errorf("expected Retry-After 60, got %q", rec.Header().Get("Retry-After"))
			}
			if !strings.Contains(rec.Body.String(), "Zu viele Anfragen") {
				t.Errorf("expected rate limit message, got %s", rec.Body.String())
			}
		}
	}

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("request %d: expected %d, got %d", i, want[i], codes[i])
		}
	}
	if counter.counts["ip:10.0.0.1"] != 3 {
		t.Errorf("expected requests keyed by ip, got %v", counter.counts)
	}
}

func TestRateLimit_KeysByUser(t *testing.T) {
	counter := newFakeCounter()
	handler := RateLimit(counter, 1, time.Minute)(okHandler())

	for _, user := range []string{"user-a", "user-b"} {
		req := httptest.NewRequest("POST", "/api/v1/chat/unified", nil)
		req = req.WithContext(WithUserID(req.Context(), user))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", user, rec.Code)
		}
	}
	if counter.counts["user:user-a"] != 1 || counter.counts["user:user-b"] != 1 {
		t.Errorf("expected one hit per user, got %v", counter.counts)
	}
}

func TestRateLimit_PassThrough(t *testing.T) {
	failing := newFakeCounter()
	failing.err = errors.New("redis down")

	tests := []struct {
		name    string
		counter WindowCounter
		limit   int
	}{
		{"no counter", nil, 10},
		{"limit disabled", newFakeCounter(), 0},
		{"counter error fails open", failing, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RateLimit(tt.counter, tt.limit, time.Minute)(okHandler())
			for i := 0; i < 3; i++ {
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
				if rec.Code != http.StatusOK {
					t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
				}
			}
		})
	}
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "not-a-host-port"
	if got := clientKey(req); got != "ip:not-a-host-port" {
		t.Errorf("expected raw remote addr, got %s", got)
	}
}
