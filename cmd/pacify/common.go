package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gentlify/pacify/internal/adapters/id"
	"github.com/gentlify/pacify/internal/application/usecases"
	"github.com/gentlify/pacify/internal/config"
	"github.com/gentlify/pacify/internal/knowledge"
	"github.com/gentlify/pacify/internal/llm"
	"github.com/gentlify/pacify/internal/ports"
	"github.com/gentlify/pacify/internal/prompt"
	"github.com/gentlify/pacify/internal/scope"
	"github.com/gentlify/pacify/internal/validation"
)

// Version information (set via ldflags)
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var cfg *config.Config

// newCatalog builds the knowledge stores and checks their static data. A
// configured seed makes selection reproducible.
func newCatalog(k config.KnowledgeConfig) (*knowledge.Catalog, error) {
	rng := knowledge.NewRandomSource()
	if k.Seed != 0 {
		rng = knowledge.Locked(knowledge.NewSeededSource(k.Seed))
	}
	catalog := knowledge.NewCatalog(rng)
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid knowledge data: %w", err)
	}
	return catalog, nil
}

// newChatDeps wires the pipeline. messages and profiles may be nil, then
// nothing is stored.
func newChatDeps(catalog *knowledge.Catalog, llmService ports.LLMService, messages ports.ChatMessageRepository, profiles ports.ChildProfileRepository) usecases.ChatDeps {
	return usecases.ChatDeps{
		Scope:     scope.NewRegexClassifier(),
		Intents:   scope.NewRegexIntentDetector(),
		Knowledge: catalog,
		Composer:  prompt.NewComposer(historyWindows(cfg.Knowledge)),
		LLM:       llmService,
		Validator: validation.NewValidator(nil),
		Messages:  messages,
		Profiles:  profiles,
		IDs:       id.New(),
	}
}

func historyWindows(k config.KnowledgeConfig) prompt.HistoryWindows {
	w := prompt.DefaultHistoryWindows()
	w.Mirror = k.MirrorHistory
	w.Expert = k.ExpertHistory
	w.Unified = k.UnifiedHistory
	return w
}

func newLLMService() *llm.Service {
	return llm.NewFromConfig(cfg.LLM)
}

// initDB opens the pool and checks the connection.
func initDB(ctx context.Context) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	if cfg.Database.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	}
	poolConfig.ConnConfig.RuntimeParams["timezone"] = "UTC"

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return pool, nil
}

// maskSecret masks a secret string for display
func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "(set)"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// boolStatus returns a status string for a boolean
func boolStatus(b bool) string {
	if b {
		return "configured"
	}
	return "not configured"
}
