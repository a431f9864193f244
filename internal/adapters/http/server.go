package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gentlify/pacify/internal/adapters/http/dto"
	"github.com/gentlify/pacify/internal/adapters/http/encoding"
	"github.com/gentlify/pacify/internal/adapters/http/handlers"
	"github.com/gentlify/pacify/internal/adapters/http/middleware"
	"github.com/gentlify/pacify/internal/config"
	"github.com/gentlify/pacify/internal/ports"
)

// Deps are the collaborators behind the routes. The persistence use cases
// (History, Profiles, Newsletter and the stored half of State) are nil when
// no database is configured; their routes then answer 503.
type Deps struct {
	Mirror  ports.ChatUseCase
	Expert  ports.ChatUseCase
	Unified ports.ChatUseCase
	Classic ports.ChatUseCase

	Catalog handlers.KnowledgeCatalog
	Scope   ports.ScopeClassifier
	Intents ports.IntentDetector

	History    ports.HistoryUseCase
	Profiles   ports.ProfileUseCase
	Newsletter ports.NewsletterUseCase
	State      ports.StateUseCase
	// StateStored enables GET and PUT /state. Migration never touches storage.
	StateStored bool

	LLM     ports.LLMService
	DB      handlers.Pinger
	Redis   handlers.Pinger
	Limiter middleware.WindowCounter
}

type Server struct {
	config     *config.Config
	deps       Deps
	router     *chi.Mux
	httpServer *http.Server
}

func NewServer(cfg *config.Config, deps Deps) *Server {
	s := &Server{
		config: cfg,
		deps:   deps,
	}

	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(s.config.Server.CORSOrigins))
	r.Use(middleware.Metrics)

	healthHandler := handlers.NewHealthHandler()
	detailedHealthHandler := handlers.NewHealthHandlerWithDeps(s.deps.DB, s.deps.Redis, s.deps.LLM)
	r.Get("/health", healthHandler.Handle)
	r.Get("/health/detailed", detailedHealthHandler.HandleDetailed)
	r.Handle("/metrics", promhttp.Handler())

	newsletterHandler := handlers.NewNewsletterHandler(s.deps.Newsletter)
	r.Route("/api/newsletter", func(r chi.Router) {
		r.Use(s.requireStore(s.deps.Newsletter != nil))
		r.Post("/", newsletterHandler.Subscribe)
		r.Get("/", newsletterHandler.Status)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth)

		chatHandler := handlers.NewChatHandler(s.deps.Mirror, s.deps.Expert, s.deps.Unified, s.deps.Classic)
		wsHandler := handlers.NewChatWSHandler(chatHandler, s.config.Server.CORSOrigins)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(s.deps.Limiter, s.config.Redis.RequestsPerMinute, time.Minute))
			r.Post("/chat", chatHandler.Classic)
			r.Post("/chat/mirror", chatHandler.Mirror)
			r.Post("/chat/expert", chatHandler.Expert)
			r.Post("/chat/unified", chatHandler.Unified)
			r.Get("/ws", wsHandler.Handle)
		})

		knowledgeHandler := handlers.NewKnowledgeHandler(s.deps.Catalog, s.deps.Scope, s.deps.Intents)
		r.Get("/knowledge/citations/{id}", knowledgeHandler.Citation)
		r.Get("/knowledge/needs/badges", knowledgeHandler.Badges)
		r.Get("/knowledge/intents", knowledgeHandler.Intents)
		r.Get("/knowledge/keywords", knowledgeHandler.Keywords)

		stateHandler := handlers.NewStateHandler(s.deps.State)
		r.Group(func(r chi.Router) {
			r.Use(s.requireStore(s.deps.State != nil))
			r.Post("/state/migrate", stateHandler.Migrate)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			r.Group(func(r chi.Router) {
				r.Use(s.requireStore(s.deps.State != nil && s.deps.StateStored))
				r.Get("/state", stateHandler.Get)
				r.Put("/state", stateHandler.Put)
			})

			historyHandler := handlers.NewHistoryHandler(s.deps.History)
			r.Group(func(r chi.Router) {
				r.Use(s.requireStore(s.deps.History != nil))
				r.Get("/history", historyHandler.List)
				r.Delete("/history/{sessionId}", historyHandler.ClearSession)
				r.Post("/messages/{id}/feedback", historyHandler.Feedback)
			})

			profilesHandler := handlers.NewProfilesHandler(s.deps.Profiles)
			r.Route("/profiles", func(r chi.Router) {
				r.Use(s.requireStore(s.deps.Profiles != nil))
				r.Post("/", profilesHandler.Create)
				r.Get("/", profilesHandler.List)
				r.Get("/active", profilesHandler.Active)
				r.Get("/{id}", profilesHandler.Get)
				r.Put("/{id}", profilesHandler.Update)
				r.Delete("/{id}", profilesHandler.Delete)
				r.Post("/{id}/activate", profilesHandler.Activate)
			})
		})
	})

	s.router = r
}

// requireStore answers 503 when the backing store is not configured.
func (s *Server) requireStore(available bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if available {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			encoding.Write(w, r, http.StatusServiceUnavailable, dto.NewErrorResponse(
				"service_unavailable",
				"Persistence is not configured",
				http.StatusServiceUnavailable,
			))
		})
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // websocket connections stay open
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting HTTP server on %s", addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Router() *chi.Mux {
	return s.router
}
