package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points config discovery at an empty temp dir so a developer's own
// config or .env cannot leak into the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PACIFY_CONFIG", filepath.Join(dir, "config.json"))
	t.Setenv("PACIFY_ENV_FILE", filepath.Join(dir, ".env"))
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("PACIFY_LLM_API_KEY", "")
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LLM.URL == "" {
		t.Error("LLM URL should not be empty")
	}
	if cfg.LLM.Model == "" {
		t.Error("LLM Model should not be empty")
	}
	if cfg.LLM.TimeoutSeconds <= 0 {
		t.Error("LLM timeout should be positive")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		t.Error("Server Port should be valid")
	}
	if cfg.Knowledge.MirrorHistory != 3 || cfg.Knowledge.ExpertHistory != 3 || cfg.Knowledge.UnifiedHistory != 4 {
		t.Errorf("unexpected history windows: %+v", cfg.Knowledge)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
	if got := cfg.LLM.EffectiveProvider(); got != ProviderCanned {
		t.Errorf("default provider = %q, want %q", got, ProviderCanned)
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		target := "original"
		t.Setenv("TEST_ENV_STRING", "new_value")
		envString("TEST_ENV_STRING", &target)
		if target != "new_value" {
			t.Errorf("expected 'new_value', got %q", target)
		}
		envString("TEST_ENV_STRING_MISSING", &target)
		if target != "new_value" {
			t.Errorf("unset var should keep value, got %q", target)
		}
	})

	t.Run("int ignores garbage", func(t *testing.T) {
		target := 42
		t.Setenv("TEST_ENV_INT", "not-a-number")
		envInt("TEST_ENV_INT", &target)
		if target != 42 {
			t.Errorf("expected 42, got %d", target)
		}
		t.Setenv("TEST_ENV_INT", "7")
		envInt("TEST_ENV_INT", &target)
		if target != 7 {
			t.Errorf("expected 7, got %d", target)
		}
	})

	t.Run("float", func(t *testing.T) {
		target := 0.1
		t.Setenv("TEST_ENV_FLOAT", "0.75")
		envFloat("TEST_ENV_FLOAT", &target)
		if target != 0.75 {
			t.Errorf("expected 0.75, got %f", target)
		}
	})

	t.Run("bool", func(t *testing.T) {
		var target bool
		t.Setenv("TEST_ENV_BOOL", "true")
		envBool("TEST_ENV_BOOL", &target)
		if !target {
			t.Error("expected true")
		}
	})

	t.Run("uint", func(t *testing.T) {
		var target uint64
		t.Setenv("TEST_ENV_UINT", "12345")
		envUint("TEST_ENV_UINT", &target)
		if target != 12345 {
			t.Errorf("expected 12345, got %d", target)
		}
	})

	t.Run("string slice trims and drops empties", func(t *testing.T) {
		target := []string{"keep"}
		t.Setenv("TEST_ENV_SLICE", " a , ,b,")
		envStringSlice("TEST_ENV_SLICE", &target)
		if len(target) != 2 || target[0] != "a" || target[1] != "b" {
			t.Errorf("unexpected slice %v", target)
		}
		t.Setenv("TEST_ENV_SLICE", " , ")
		envStringSlice("TEST_ENV_SLICE", &target)
		if len(target) != 2 {
			t.Errorf("all-empty value should keep previous slice, got %v", target)
		}
	})
}

func TestEffectiveProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		key      string
		want     string
	}{
		{"no key", "", "", ProviderCanned},
		{"build placeholder", "", "dummy-key-for-build", ProviderCanned},
		{"openai without key", ProviderOpenAI, "  ", ProviderCanned},
		{"key picks openai", "", "sk-test", ProviderOpenAI},
		{"explicit openai", ProviderOpenAI, "sk-test", ProviderOpenAI},
		{"explicit canned wins over key", ProviderCanned, "sk-test", ProviderCanned},
		{"compatible needs no key", ProviderCompatible, "", ProviderCompatible},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := LLMConfig{Provider: tt.provider, APIKey: tt.key}
			if got := c.EffectiveProvider(); got != tt.want {
				t.Errorf("EffectiveProvider() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server port"},
		{"bad provider", func(c *Config) { c.LLM.Provider = "gemini" }, "LLM provider"},
		{"live without model", func(c *Config) { c.LLM.APIKey = "sk"; c.LLM.Model = "" }, "LLM model is required"},
		{"live with bad url", func(c *Config) { c.LLM.APIKey = "sk"; c.LLM.URL = "not a url" }, "LLM URL must be a valid URL"},
		{"zero timeout", func(c *Config) { c.LLM.TimeoutSeconds = 0 }, "LLM timeout"},
		{"bad postgres url", func(c *Config) { c.Database.PostgresURL = "localhost" }, "PostgreSQL URL"},
		{"bad redis url", func(c *Config) { c.Redis.URL = "redis" }, "Redis URL"},
		{"history too large", func(c *Config) { c.Knowledge.UnifiedHistory = 11 }, "unified history window"},
		{"sample ratio", func(c *Config) { c.Tracing.SampleRatio = 2 }, "sample ratio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.HasPrefix(err.Error(), "configuration errors: ") {
				t.Errorf("unexpected error prefix: %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}

	t.Run("canned skips llm url checks", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.LLM.URL = ""
		if err := cfg.Validate(); err != nil {
			t.Errorf("canned provider should not need a URL, got %v", err)
		}
	})

	t.Run("collects all errors", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Server.Port = -1
		cfg.Database.MaxConns = 0
		err := cfg.Validate()
		if err == nil || strings.Count(err.Error(), ";") != 1 {
			t.Errorf("expected two joined errors, got %v", err)
		}
	})
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("PACIFY_SERVER_PORT", "9090")
	t.Setenv("PACIFY_LLM_MODEL", "gpt-4o")
	t.Setenv("OPENAI_API_KEY", "sk-fallback")
	t.Setenv("PACIFY_CORS_ORIGINS", "https://gentlify.de, https://app.gentlify.de")
	t.Setenv("PACIFY_KNOWLEDGE_SEED", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("model = %q", cfg.LLM.Model)
	}
	if cfg.LLM.APIKey != "sk-fallback" {
		t.Errorf("OPENAI_API_KEY fallback not applied, got %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.EffectiveProvider() != ProviderOpenAI {
		t.Errorf("provider = %q", cfg.LLM.EffectiveProvider())
	}
	if len(cfg.Server.CORSOrigins) != 2 {
		t.Errorf("cors origins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Knowledge.Seed != 7 {
		t.Errorf("seed = %d", cfg.Knowledge.Seed)
	}
}

func TestLoad_PacifyKeyWinsOverFallback(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-fallback")
	t.Setenv("PACIFY_LLM_API_KEY", "sk-primary")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.LLM.APIKey != "sk-primary" {
		t.Errorf("api key = %q", cfg.LLM.APIKey)
	}
}

func TestLoad_ConfigFileThenEnv(t *testing.T) {
	dir := isolate(t)
	file := `{"server": {"port": 7000, "host": "127.0.0.1"}, "knowledge": {"mirror_history": 2}}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(file), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PACIFY_SERVER_PORT", "7001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("host from file not applied, got %q", cfg.Server.Host)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("env should override file, got port %d", cfg.Server.Port)
	}
	if cfg.Knowledge.MirrorHistory != 2 {
		t.Errorf("mirror history = %d", cfg.Knowledge.MirrorHistory)
	}
	if cfg.Knowledge.UnifiedHistory != 4 {
		t.Errorf("defaults should survive partial file, got %d", cfg.Knowledge.UnifiedHistory)
	}
}

func TestLoad_DotEnvDoesNotOverride(t *testing.T) {
	dir := isolate(t)
	dotenv := "PACIFY_LLM_MODEL=from-dotenv\nPACIFY_REDIS_URL=redis://localhost:6379/0\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PACIFY_LLM_MODEL", "from-env")
	// godotenv sets variables it loads; clear them after the test.
	t.Setenv("PACIFY_REDIS_URL", "")
	os.Unsetenv("PACIFY_REDIS_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.LLM.Model != "from-env" {
		t.Errorf("process env should win, got %q", cfg.LLM.Model)
	}
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Errorf(".env value not loaded, got %q", cfg.Redis.URL)
	}
	if !cfg.IsRateLimitConfigured() {
		t.Error("rate limiting should be configured")
	}
}

func TestLoad_InvalidEnvFails(t *testing.T) {
	isolate(t)
	t.Setenv("PACIFY_SERVER_PORT", "70000")

	if _, err := Load(); err == nil {
		t.Error("expected error for out-of-range port")
	}
}
