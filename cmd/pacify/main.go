package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gentlify/pacify/internal/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pacify",
		Short: "Pacify - parenting guidance backend",
		Long: `Pacify answers parents' questions about their young children.
Messages pass a scope filter, pick age-appropriate knowledge, and are
answered by a language model whose output is validated before use.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return nil
		},
	}

	rootCmd.AddCommand(
		serveCmd(),
		askCmd(),
		knowledgeCmd(),
		configCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// configCmd shows current configuration
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Current configuration:")
			fmt.Println()

			fmt.Println("LLM:")
			fmt.Printf("  Provider: %s\n", cfg.LLM.EffectiveProvider())
			fmt.Printf("  URL:      %s\n", cfg.LLM.URL)
			fmt.Printf("  Model:    %s\n", cfg.LLM.Model)
			fmt.Printf("  Timeout:  %s\n", cfg.LLM.Timeout())
			fmt.Printf("  API Key:  %s\n", maskSecret(cfg.LLM.APIKey))
			fmt.Println()

			fmt.Println("Database:")
			fmt.Printf("  PostgreSQL: %s\n", maskSecret(cfg.Database.PostgresURL))
			fmt.Printf("  Status:     %s\n", boolStatus(cfg.IsDatabaseConfigured()))
			fmt.Println()

			fmt.Println("Rate limit:")
			fmt.Printf("  Redis:      %s\n", maskSecret(cfg.Redis.URL))
			fmt.Printf("  Per minute: %d\n", cfg.Redis.RequestsPerMinute)
			fmt.Printf("  Status:     %s\n", boolStatus(cfg.IsRateLimitConfigured()))
			fmt.Println()

			fmt.Println("Server:")
			fmt.Printf("  Address: %s:%d\n", cfg.Server.Host, cfg.Server.Port)
			fmt.Printf("  CORS:    %v\n", cfg.Server.CORSOrigins)
			fmt.Println()

			fmt.Println("Knowledge:")
			fmt.Printf("  History windows: mirror=%d expert=%d unified=%d\n",
				cfg.Knowledge.MirrorHistory, cfg.Knowledge.ExpertHistory, cfg.Knowledge.UnifiedHistory)
			if cfg.Knowledge.Seed != 0 {
				fmt.Printf("  Seed:            %d\n", cfg.Knowledge.Seed)
			}
			fmt.Println()

			fmt.Println("Environment variables:")
			fmt.Println("  PACIFY_LLM_PROVIDER, PACIFY_LLM_URL, PACIFY_LLM_API_KEY (or OPENAI_API_KEY), PACIFY_LLM_MODEL")
			fmt.Println("  PACIFY_POSTGRES_URL, PACIFY_REDIS_URL, PACIFY_RATE_LIMIT_PER_MINUTE")
			fmt.Println("  PACIFY_SERVER_HOST, PACIFY_SERVER_PORT, PACIFY_CORS_ORIGINS")
			fmt.Println("  PACIFY_TRACING_ENABLED, PACIFY_OTLP_ENDPOINT, PACIFY_KNOWLEDGE_SEED")

			return nil
		},
	}
}

// versionCmd shows version information
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Pacify %s\n", version)
			fmt.Printf("  Commit:     %s\n", commit)
			fmt.Printf("  Build Date: %s\n", buildDate)
		},
	}
}
