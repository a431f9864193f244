package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI     = "openai"
	ProviderCompatible = "compatible"
	ProviderCanned     = "canned"

	// placeholderAPIKey is what build pipelines inject when no real key exists.
	placeholderAPIKey = "dummy-key-for-build"
)

// Config holds all configuration for Pacify
type Config struct {
	LLM       LLMConfig       `json:"llm"`
	Database  DatabaseConfig  `json:"database"`
	Redis     RedisConfig     `json:"redis"`
	Server    ServerConfig    `json:"server"`
	Knowledge KnowledgeConfig `json:"knowledge"`
	Tracing   TracingConfig   `json:"tracing"`
}

// LLMConfig selects and configures the model backend.
type LLMConfig struct {
	Provider       string `json:"provider"` // openai, compatible or canned; empty picks from the key
	URL            string `json:"url"`
	APIKey         string `json:"api_key"`
	Model          string `json:"model"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	MaxRetries     int    `json:"max_retries"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	PostgresURL string `json:"postgres_url"`
	MaxConns    int    `json:"max_conns"`
}

// RedisConfig backs the per-user rate limiter. Empty URL disables it.
type RedisConfig struct {
	URL               string `json:"url"`
	RequestsPerMinute int    `json:"requests_per_minute"`
}

// ServerConfig holds API server configuration
type ServerConfig struct {
	Host        string   `json:"host"`
	Port        int      `json:"port"`
	CORSOrigins []string `json:"cors_origins"`
}

// KnowledgeConfig tunes the prompt pipeline.
type KnowledgeConfig struct {
	MirrorHistory  int `json:"mirror_history"`
	ExpertHistory  int `json:"expert_history"`
	UnifiedHistory int `json:"unified_history"`
	// Seed fixes knowledge selection randomness; 0 means unseeded.
	Seed uint64 `json:"seed"`
}

type TracingConfig struct {
	Enabled     bool    `json:"enabled"`
	Endpoint    string  `json:"endpoint"`
	Insecure    bool    `json:"insecure"`
	SampleRatio float64 `json:"sample_ratio"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			URL:            "https://api.openai.com/v1",
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 60,
			MaxRetries:     2,
		},
		Database: DatabaseConfig{
			MaxConns: 10,
		},
		Redis: RedisConfig{
			RequestsPerMinute: 20,
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Knowledge: KnowledgeConfig{
			MirrorHistory:  3,
			ExpertHistory:  3,
			UnifiedHistory: 4,
		},
		Tracing: TracingConfig{
			SampleRatio: 0.1,
		},
	}
}

// envString loads a string environment variable into the target pointer if set
func envString(key string, target *string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

// envInt loads an integer environment variable into the target pointer if set and valid
func envInt(key string, target *int) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*target = i
		}
	}
}

func envUint(key string, target *uint64) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseUint(v, 10, 64); err == nil {
			*target = i
		}
	}
}

// envFloat loads a float64 environment variable into the target pointer if set and valid
func envFloat(key string, target *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*target = f
		}
	}
}

func envBool(key string, target *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*target = b
		}
	}
}

// envStringSlice loads a comma-separated environment variable into a string slice
func envStringSlice(key string, target *[]string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			*target = result
		}
	}
}

// Load reads the config file, then .env, then PACIFY_* overrides, and validates.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath := getConfigPath()
	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to parse config file %s: %v\n", configPath, err)
		}
	}

	// Existing environment variables win over .env entries.
	envFile := os.Getenv("PACIFY_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load %s: %v\n", envFile, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	envString("PACIFY_LLM_PROVIDER", &cfg.LLM.Provider)
	envString("PACIFY_LLM_URL", &cfg.LLM.URL)
	envString("OPENAI_API_KEY", &cfg.LLM.APIKey)
	envString("PACIFY_LLM_API_KEY", &cfg.LLM.APIKey)
	envString("PACIFY_LLM_MODEL", &cfg.LLM.Model)
	envInt("PACIFY_LLM_TIMEOUT_SECONDS", &cfg.LLM.TimeoutSeconds)
	envInt("PACIFY_LLM_MAX_RETRIES", &cfg.LLM.MaxRetries)

	envString("PACIFY_POSTGRES_URL", &cfg.Database.PostgresURL)
	envInt("PACIFY_POSTGRES_MAX_CONNS", &cfg.Database.MaxConns)

	envString("PACIFY_REDIS_URL", &cfg.Redis.URL)
	envInt("PACIFY_RATE_LIMIT_PER_MINUTE", &cfg.Redis.RequestsPerMinute)

	envString("PACIFY_SERVER_HOST", &cfg.Server.Host)
	envInt("PACIFY_SERVER_PORT", &cfg.Server.Port)
	envStringSlice("PACIFY_CORS_ORIGINS", &cfg.Server.CORSOrigins)

	envInt("PACIFY_MIRROR_HISTORY", &cfg.Knowledge.MirrorHistory)
	envInt("PACIFY_EXPERT_HISTORY", &cfg.Knowledge.ExpertHistory)
	envInt("PACIFY_UNIFIED_HISTORY", &cfg.Knowledge.UnifiedHistory)
	envUint("PACIFY_KNOWLEDGE_SEED", &cfg.Knowledge.Seed)

	envBool("PACIFY_TRACING_ENABLED", &cfg.Tracing.Enabled)
	envString("PACIFY_OTLP_ENDPOINT", &cfg.Tracing.Endpoint)
	envBool("PACIFY_OTLP_INSECURE", &cfg.Tracing.Insecure)
	envFloat("PACIFY_TRACING_SAMPLE_RATIO", &cfg.Tracing.SampleRatio)
}

// HasAPIKey reports whether a usable model credential is configured.
func (c *LLMConfig) HasAPIKey() bool {
	key := strings.TrimSpace(c.APIKey)
	return key != "" && key != placeholderAPIKey
}

// EffectiveProvider resolves an empty provider from the key, and falls back
// to canned answers whenever no usable key exists.
func (c *LLMConfig) EffectiveProvider() string {
	switch {
	case c.Provider == ProviderCanned:
		return ProviderCanned
	case c.Provider == ProviderCompatible:
		return ProviderCompatible
	case !c.HasAPIKey():
		return ProviderCanned
	default:
		return ProviderOpenAI
	}
}

func (c *LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// IsDatabaseConfigured returns true if PostgreSQL persistence is enabled
func (c *Config) IsDatabaseConfigured() bool {
	return c.Database.PostgresURL != ""
}

// IsRateLimitConfigured returns true if the Redis-backed limiter is enabled
func (c *Config) IsRateLimitConfigured() bool {
	return c.Redis.URL != "" && c.Redis.RequestsPerMinute > 0
}

// isValidURL validates that a URL has proper format
func isValidURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, "server port must be between 1 and 65535")
	}

	switch c.LLM.Provider {
	case "", ProviderOpenAI, ProviderCompatible, ProviderCanned:
	default:
		errs = append(errs, fmt.Sprintf("LLM provider must be one of %s, %s, %s", ProviderOpenAI, ProviderCompatible, ProviderCanned))
	}
	if c.LLM.EffectiveProvider() != ProviderCanned {
		if c.LLM.Model == "" {
			errs = append(errs, "LLM model is required")
		}
		if c.LLM.URL == "" {
			errs = append(errs, "LLM URL is required")
		} else if !isValidURL(c.LLM.URL) {
			errs = append(errs, "LLM URL must be a valid URL")
		}
	}
	if c.LLM.TimeoutSeconds < 1 {
		errs = append(errs, "LLM timeout must be positive")
	}
	if c.LLM.MaxRetries < 0 {
		errs = append(errs, "LLM max retries must not be negative")
	}

	if c.Database.PostgresURL != "" && !isValidURL(c.Database.PostgresURL) {
		errs = append(errs, "PostgreSQL URL must be a valid URL")
	}
	if c.Database.MaxConns < 1 {
		errs = append(errs, "PostgreSQL max conns must be at least 1")
	}

	if c.Redis.URL != "" && !isValidURL(c.Redis.URL) {
		errs = append(errs, "Redis URL must be a valid URL")
	}
	if c.Redis.RequestsPerMinute < 0 {
		errs = append(errs, "rate limit must not be negative")
	}

	for name, n := range map[string]int{
		"mirror":  c.Knowledge.MirrorHistory,
		"expert":  c.Knowledge.ExpertHistory,
		"unified": c.Knowledge.UnifiedHistory,
	} {
		if n < 0 || n > 10 {
			errs = append(errs, fmt.Sprintf("%s history window must be between 0 and 10", name))
		}
	}

	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, "tracing sample ratio must be between 0 and 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() string {
	if path := os.Getenv("PACIFY_CONFIG"); path != "" {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(homeDir, ".config", "pacify", "config.json")
}
