package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/gentlify/pacify/internal/adapters/circuitbreaker"
	"github.com/gentlify/pacify/internal/adapters/metrics"
	"github.com/gentlify/pacify/internal/adapters/retry"
	"github.com/gentlify/pacify/internal/adapters/tracing"
	"github.com/gentlify/pacify/internal/domain"
	"github.com/gentlify/pacify/internal/ports"
)

const (
	// DefaultTimeout is the maximum time to wait for one model answer
	DefaultTimeout = 60 * time.Second

	breakerFailures = 5
	breakerCooldown = 30 * time.Second
)

// Backend is one concrete way of producing a completion.
type Backend interface {
	Generate(ctx context.Context, req *ports.LLMRequest) (*ports.LLMResponse, error)
	Name() string
	Model() string
}

// Service implements ports.LLMService on top of a Backend, adding a
// per-call timeout, a circuit breaker, metrics, tracing and mapping of
// upstream failures onto domain errors.
type Service struct {
	backend Backend
	breaker *circuitbreaker.CircuitBreaker
	timeout time.Duration
}

// NewService creates a new LLM service
func NewService(backend Backend, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		backend: backend,
		timeout: timeout,
		breaker: circuitbreaker.New(breakerFailures, breakerCooldown,
			circuitbreaker.WithIgnore(notUpstreamFault),
			circuitbreaker.WithStateChange(func(from, to circuitbreaker.State) {
				log.Printf("LLM circuit breaker %s -> %s (%s)", from, to, backend.Name())
				metrics.LLMCircuitState.Set(float64(to))
			}),
		),
	}
}

func (s *Service) Provider() string { return s.backend.Name() }

// Complete runs one completion. It never retries itself; the backend does.
func (s *Service) Complete(ctx context.Context, req *ports.LLMRequest) (*ports.LLMResponse, error) {
	provider, model := s.backend.Name(), s.backend.Model()

	ctx, span := tracing.Tracer().Start(ctx, "llm.complete", trace.WithAttributes(
		attribute.String("llm.provider", provider),
		attribute.String("llm.model", model),
		attribute.String("pacify.mode", string(req.Mode)),
		attribute.Int("llm.max_tokens", req.MaxTokens),
		attribute.Float64("llm.temperature", req.Temperature),
	))
	defer span.End()

	start := time.Now()
	var resp *ports.LLMResponse
	err := s.breaker.Execute(func() error {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		var err error
		resp, err = s.backend.Generate(callCtx, req)
		return err
	})
	metrics.LLMRequestDuration.WithLabelValues(provider, model).Observe(time.Since(start).Seconds())

	if err != nil {
		mapped := mapError(ctx, err)
		metrics.LLMRequestsTotal.WithLabelValues(provider, model, statusLabel(mapped)).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, mapped.Error())
		log.Printf("LLM request failed (provider=%s mode=%s): %v", provider, req.Mode, err)
		return nil, mapped
	}

	metrics.LLMRequestsTotal.WithLabelValues(provider, model, "success").Inc()
	metrics.LLMTokensTotal.WithLabelValues(provider, model).Add(float64(resp.TokensUsed))
	span.SetAttributes(attribute.Int("llm.tokens_used", resp.TokensUsed))
	return resp, nil
}

// mapError turns backend failures into the domain taxonomy. A cancelled
// caller context is returned as is.
func mapError(ctx context.Context, err error) error {
	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	case errors.Is(err, domain.ErrLLMEmptyResponse):
		return err
	case retry.StatusCode(err) == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", domain.ErrLLMRateLimited, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
}

func statusLabel(err error) string {
	switch {
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, domain.ErrLLMRateLimited):
		return "rate_limited"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}

// notUpstreamFault reports errors that say nothing about provider health:
// a caller that went away, or a request the provider rejected as invalid.
func notUpstreamFault(err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}
	code := retry.StatusCode(err)
	return code >= 400 && code < 500 && code != http.StatusTooManyRequests && code != http.StatusRequestTimeout
}
