package llm

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gentlify/pacify/internal/adapters/circuitbreaker"
	"github.com/gentlify/pacify/internal/adapters/retry"
	"github.com/gentlify/pacify/internal/config"
	"github.com/gentlify/pacify/internal/domain"
	"github.com/gentlify/pacify/internal/ports"
	"github.com/gentlify/pacify/internal/prompt"
)

type stubBackend struct {
	calls atomic.Int32
	fn    func(ctx context.Context) (*ports.LLMResponse, error)
}

func (s *stubBackend) Name() string  { return "stub" }
func (s *stubBackend) Model() string { return "stub-model" }

func (s *stubBackend) Generate(ctx context.Context, _ *ports.LLMRequest) (*ports.LLMResponse, error) {
	s.calls.Add(1)
	return s.fn(ctx)
}

func failing(err error) *stubBackend {
	return &stubBackend{fn: func(context.Context) (*ports.LLMResponse, error) { return nil, err }}
}

func unifiedRequest() *ports.LLMRequest {
	return &ports.LLMRequest{SystemPrompt: "s", UserPrompt: "u", Mode: prompt.ModeUnified, MaxTokens: 800}
}

func TestService_Complete(t *testing.T) {
	backend := &stubBackend{fn: func(context.Context) (*ports.LLMResponse, error) {
		return &ports.LLMResponse{Content: "Antwort", TokensUsed: 12, Provider: "stub"}, nil
	}}
	svc := NewService(backend, time.Second)

	resp, err := svc.Complete(context.Background(), unifiedRequest())
	require.NoError(t, err)
	assert.Equal(t, "Antwort", resp.Content)
	assert.Equal(t, "stub", svc.Provider())
}

func TestService_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"rate limited", &retry.StatusError{StatusCode: http.StatusTooManyRequests}, domain.ErrLLMRateLimited},
		{"server error", &retry.StatusError{StatusCode: http.StatusBadGateway}, domain.ErrLLMUnavailable},
		{"network", errors.New("connection reset"), domain.ErrLLMUnavailable},
		{"empty answer", domain.ErrLLMEmptyResponse, domain.ErrLLMEmptyResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(failing(tt.err), time.Second)
			_, err := svc.Complete(context.Background(), unifiedRequest())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_CircuitOpensAfterRepeatedFailures(t *testing.T) {
	backend := failing(&retry.StatusError{StatusCode: http.StatusServiceUnavailable})
	svc := NewService(backend, time.Second)

	for i := 0; i < breakerFailures; i++ {
		_, err := svc.Complete(context.Background(), unifiedRequest())
		require.ErrorIs(t, err, domain.ErrLLMUnavailable)
	}

	_, err := svc.Complete(context.Background(), unifiedRequest())
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.Equal(t, int32(breakerFailures), backend.calls.Load(), "open circuit must not reach the backend")
}

func TestService_ClientErrorsDoNotOpenCircuit(t *testing.T) {
	backend := failing(&retry.StatusError{StatusCode: http.StatusBadRequest})
	svc := NewService(backend, time.Second)

	for i := 0; i < breakerFailures+2; i++ {
		_, _ = svc.Complete(context.Background(), unifiedRequest())
	}
	assert.Equal(t, circuitbreaker.StateClosed, svc.breaker.State())
	assert.Equal(t, int32(breakerFailures+2), backend.calls.Load())
}

func TestService_CallerCancellation(t *testing.T) {
	backend := &stubBackend{fn: func(ctx context.Context) (*ports.LLMResponse, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	svc := NewService(backend, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Complete(ctx, unifiedRequest())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, circuitbreaker.StateClosed, svc.breaker.State())
}

func TestService_Timeout(t *testing.T) {
	backend := &stubBackend{fn: func(ctx context.Context) (*ports.LLMResponse, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	svc := NewService(backend, 20*time.Millisecond)

	_, err := svc.Complete(context.Background(), unifiedRequest())
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewBackend(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LLMConfig
		want string
	}{
		{"no key", config.LLMConfig{}, "canned"},
		{"placeholder key", config.LLMConfig{APIKey: "dummy-key-for-build"}, "canned"},
		{"openai", config.LLMConfig{APIKey: "sk", URL: "https://api.openai.com/v1", Model: "gpt-4o-mini", TimeoutSeconds: 5}, "openai"},
		{"compatible", config.LLMConfig{Provider: config.ProviderCompatible, URL: "http://localhost:8000/v1", Model: "m", TimeoutSeconds: 5}, "compatible"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewBackend(tt.cfg).Name())
		})
	}
}
