package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"agentdeck/internal/api"
	"agentdeck/internal/config"
	"agentdeck/internal/logging"
	"agentdeck/internal/staging"
	"agentdeck/internal/ui"
)

var (
	version = "0.1.0"
	model   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "agentdeck",
		Short: "Terminal admin client for AI chatbot agents",
		Long: `Agentdeck manages AI chatbot agents on a remote agent platform.
Running it with no arguments opens the interactive dashboard; subcommands
cover scripted use: staging knowledge sources, creating agents and listing
what exists.`,
		RunE: runDashboard,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "default model for drafted agents (default is gpt-4)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("agentdeck version %s\n", version)
		},
	})

	rootCmd.AddCommand(newAgentsCmd())
	rootCmd.AddCommand(newStageCmd())
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads and validates configuration, applying flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Version = version

	if model != "" {
		cfg.Agent.DefaultModel = model
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newClient builds the platform API client from config.
func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		APIKey:  cfg.API.APIKey,
		Timeout: cfg.API.Retry.HTTPTimeout,
		Retry: api.RetryConfig{
			MaxRetries: cfg.API.Retry.MaxRetries,
			RetryDelay: cfg.API.Retry.RetryDelay,
			MaxDelay:   api.DefaultRetryConfig().MaxDelay,
		},
	})
}

// openSession restores the staging session persisted by previous runs.
func openSession(cfg *config.Config) (*staging.Session, *staging.Store, error) {
	store, err := staging.NewStore()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open staging store: %w", err)
	}

	defaults := staging.DraftAgent{
		Name:  cfg.Agent.DefaultName,
		Model: cfg.Agent.DefaultModel,
	}
	if snap, ok := store.Load(); ok {
		return staging.Restore(snap, defaults, store.Save), store, nil
	}
	return staging.NewSession(defaults, store.Save), store, nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.Logging.Enabled {
		if err := logging.EnableFileLogging(config.GetConfigDir(), logging.ParseLevel(cfg.Logging.Level)); err != nil {
			fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
		}
		defer logging.Close()
	}

	session, store, err := openSession(cfg)
	if err != nil {
		return err
	}

	client := newClient(cfg)
	return ui.Run(cfg, client, session, store)
}
