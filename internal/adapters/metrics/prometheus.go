package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pacify_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pacify_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	ChatRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pacify_chat_requests_total",
		Help: "Chat pipeline runs by mode and outcome",
	}, []string{"mode", "outcome"})

	ScopeReferralsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pacify_scope_referrals_total",
		Help: "Messages routed to a referral instead of an answer",
	}, []string{"referral_type"})

	ValidationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pacify_validation_failures_total",
		Help: "Model answers rejected by the response validator",
	}, []string{"mode", "kind"})

	ConfidenceDowngradesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pacify_confidence_downgrades_total",
		Help: "Expert answers whose confidence was lowered by the contradiction check",
	})

	LLMRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pacify_llm_requests_total",
		Help: "Total LLM requests",
	}, []string{"provider", "model", "status"})

	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pacify_llm_request_duration_seconds",
		Help:    "LLM request duration",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"provider", "model"})

	LLMTokensTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pacify_llm_tokens_total",
		Help: "Tokens reported by the LLM provider",
	}, []string{"provider", "model"})

	LLMCircuitState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pacify_llm_circuit_state",
		Help: "LLM circuit breaker state (0 closed, 1 open, 2 half-open)",
	})

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pacify_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	})

	WebSocketConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pacify_websocket_connections_active",
		Help: "Number of open chat websocket connections",
	})

	NewsletterSignupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pacify_newsletter_signups_total",
		Help: "Newsletter signup attempts by result",
	}, []string{"result"})

	MessagesStoredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pacify_messages_stored_total",
		Help: "Chat messages written to history",
	})
)
