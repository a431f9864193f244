package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gentlify/pacify/internal/adapters/http"
	"github.com/gentlify/pacify/internal/adapters/http/handlers"
	"github.com/gentlify/pacify/internal/adapters/http/middleware"
	"github.com/gentlify/pacify/internal/adapters/id"
	"github.com/gentlify/pacify/internal/adapters/postgres"
	"github.com/gentlify/pacify/internal/adapters/tracing"
	"github.com/gentlify/pacify/internal/application/usecases"
	"github.com/gentlify/pacify/internal/ports"
)

// serveCmd starts the HTTP API server
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the Pacify HTTP API server.

Chat endpoints work without further setup; without an LLM API key they
answer from canned responses.

Optional:
  - PostgreSQL for history, profiles, newsletter and client state (PACIFY_POSTGRES_URL)
  - Redis for per-user rate limiting (PACIFY_REDIS_URL)
  - OTLP trace export (PACIFY_TRACING_ENABLED, PACIFY_OTLP_ENDPOINT)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// runServer initializes and starts the HTTP API server
func runServer(ctx context.Context) error {
	handlers.Version = version

	log.Println("Starting Pacify API server...")
	log.Printf("  HTTP:     http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("  LLM:      %s (%s)", cfg.LLM.EffectiveProvider(), cfg.LLM.Model)

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(ctx, tracing.Config{
			ServiceName: "pacify-api",
			Version:     version,
			Endpoint:    cfg.Tracing.Endpoint,
			Insecure:    cfg.Tracing.Insecure,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize tracing: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Printf("Error shutting down tracer: %v", err)
				}
			}()
			log.Println("OpenTelemetry tracing initialized")
		}
	}

	catalog, err := newCatalog(cfg.Knowledge)
	if err != nil {
		return err
	}
	llmService := newLLMService()
	idGen := id.New()

	var (
		messages ports.ChatMessageRepository
		profiles ports.ChildProfileRepository
		deps     http.Deps
	)

	if cfg.IsDatabaseConfigured() {
		log.Println("Connecting to PostgreSQL...")
		pool, err := initDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := postgres.RunMigrations(ctx, pool); err != nil {
			return err
		}
		log.Println("Database connection established")

		messageRepo := postgres.NewChatMessageRepository(pool)
		profileRepo := postgres.NewChildProfileRepository(pool)
		txManager := postgres.NewTransactionManager(pool)
		messages, profiles = messageRepo, profileRepo

		deps.DB = pool
		deps.History = usecases.NewHistory(messageRepo)
		deps.Profiles = usecases.NewProfiles(profileRepo, txManager, idGen)
		deps.Newsletter = usecases.NewNewsletter(postgres.NewNewsletterRepository(pool), idGen)
		deps.State = usecases.NewAppState(postgres.NewAppStateRepository(pool))
		deps.StateStored = true
	} else {
		log.Println("PostgreSQL not configured - history, profiles and newsletter unavailable")
		deps.State = usecases.NewAppState(nil)
	}

	if cfg.IsRateLimitConfigured() {
		counter, err := middleware.NewRedisCounter(ctx, cfg.Redis.URL)
		if err != nil {
			log.Printf("Warning: Rate limiting disabled: %v", err)
		} else {
			defer counter.Close()
			deps.Limiter = counter
			deps.Redis = counter
			log.Printf("Rate limiting: %d requests per minute", cfg.Redis.RequestsPerMinute)
		}
	}

	chatDeps := newChatDeps(catalog, llmService, messages, profiles)
	deps.Mirror = usecases.NewMirrorChat(chatDeps)
	deps.Expert = usecases.NewExpertChat(chatDeps)
	deps.Unified = usecases.NewUnifiedChat(chatDeps)
	deps.Classic = usecases.NewClassicChat(chatDeps)
	deps.Catalog = catalog
	deps.Scope = chatDeps.Scope
	deps.Intents = chatDeps.Intents
	deps.LLM = llmService

	server := http.NewServer(cfg, deps)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
		log.Println("Shutting down gracefully...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		log.Println("Server stopped")
		return nil
	}
}
