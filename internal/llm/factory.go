package llm

import (
	"log"

	"github.com/gentlify/pacify/internal/config"
)

// NewBackend picks the backend for the configured provider. Without a usable
// key the canned backend is returned.
func NewBackend(cfg config.LLMConfig) Backend {
	switch cfg.EffectiveProvider() {
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.URL, cfg.APIKey, cfg.Model, cfg.Timeout(), cfg.MaxRetries)
	case config.ProviderCompatible:
		return NewClient(cfg.URL, cfg.APIKey, cfg.Model, cfg.Timeout(), cfg.MaxRetries)
	default:
		if cfg.Provider != config.ProviderCanned {
			log.Println("No LLM API key configured, using canned answers")
		}
		return NewCannedClient()
	}
}

// NewFromConfig builds the full service for cfg.
func NewFromConfig(cfg config.LLMConfig) *Service {
	return NewService(NewBackend(cfg), cfg.Timeout())
}
