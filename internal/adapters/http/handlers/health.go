package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gentlify/pacify/internal/ports"
)

// Version is reported by the health endpoints. It is set by the CLI.
var Version = "dev"

// HealthCheckConfig holds configuration for health checks
type HealthCheckConfig struct {
	Timeout time.Duration // Timeout for each individual health check
}

// DefaultHealthCheckConfig returns default health check configuration
func DefaultHealthCheckConfig() HealthCheckConfig {
	return HealthCheckConfig{
		Timeout: 5 * time.Second,
	}
}

// Pinger is implemented by the postgres pool and the redis counter.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	config HealthCheckConfig
	db     Pinger
	redis  Pinger
	llm    ports.LLMService
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		config: DefaultHealthCheckConfig(),
	}
}

// NewHealthHandlerWithDeps takes the optional backends. Nil ones are not
// reported.
func NewHealthHandlerWithDeps(db, redis Pinger, llm ports.LLMService) *HealthHandler {
	return &HealthHandler{
		config: DefaultHealthCheckConfig(),
		db:     db,
		redis:  redis,
		llm:    llm,
	}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type DetailedHealthResponse struct {
	Status   string                   `json:"status"`
	Version  string                   `json:"version"`
	Services map[string]ServiceHealth `json:"services"`
}

type ServiceHealth struct {
	Status    string  `json:"status"`
	LatencyMs *int64  `json:"latency_ms,omitempty"`
	Provider  string  `json:"provider,omitempty"`
	Error     *string `json:"error,omitempty"`
}

// Handle provides a basic health check endpoint
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	respond(w, r, HealthResponse{Status: "ok", Version: Version}, http.StatusOK)
}

// HandleDetailed checks every configured backend. The model itself is not
// called; only the selected provider is reported.
func (h *HealthHandler) HandleDetailed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := DetailedHealthResponse{
		Version:  Version,
		Services: make(map[string]ServiceHealth),
	}

	if h.db != nil {
		response.Services["database"] = h.checkPing(ctx, h.db)
	}
	if h.redis != nil {
		response.Services["redis"] = h.checkPing(ctx, h.redis)
	}
	if h.llm != nil {
		response.Services["llm"] = h.checkLLM()
	}

	response.Status = h.calculateOverallStatus(response.Services)

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}
	respond(w, r, response, statusCode)
}

func (h *HealthHandler) checkPing(ctx context.Context, p Pinger) ServiceHealth {
	start := time.Now()
	checkCtx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	err := p.Ping(checkCtx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		errMsg := err.Error()
		return ServiceHealth{
			Status:    "unhealthy",
			LatencyMs: &latency,
			Error:     &errMsg,
		}
	}

	return ServiceHealth{
		Status:    "healthy",
		LatencyMs: &latency,
	}
}

// checkLLM reports canned answers as degraded.
func (h *HealthHandler) checkLLM() ServiceHealth {
	provider := h.llm.Provider()
	if provider == "canned" {
		return ServiceHealth{Status: "degraded", Provider: provider}
	}
	return ServiceHealth{Status: "healthy", Provider: provider}
}

// calculateOverallStatus determines the overall system status based on individual services
func (h *HealthHandler) calculateOverallStatus(services map[string]ServiceHealth) string {
	if len(services) == 0 {
		return "healthy"
	}

	hasUnhealthy := false
	hasDegraded := false

	for name, service := range services {
		if service.Status == "unhealthy" {
			// Core services (database, llm) are critical
			if name == "database" || name == "llm" {
				return "unhealthy"
			}
			hasUnhealthy = true
		}
		if service.Status == "degraded" {
			hasDegraded = true
		}
	}

	if hasUnhealthy || hasDegraded {
		return "degraded"
	}

	return "healthy"
}
