package config

import "time"

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:3001"

	DefaultAgentName  = "New AI Agent"
	DefaultAgentModel = "gpt-4"

	// Retry settings
	DefaultMaxRetries  = 3
	DefaultRetryDelay  = 1 * time.Second
	DefaultHTTPTimeout = 60 * time.Second

	// Commit fan-out
	DefaultMaxConcurrentUploads = 4

	// Snapshot watcher
	DefaultWatchDebounceMs = 500
)

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Retry: RetryConfig{
				MaxRetries:  DefaultMaxRetries,
				RetryDelay:  DefaultRetryDelay,
				HTTPTimeout: DefaultHTTPTimeout,
			},
		},
		Agent: AgentConfig{
			DefaultName:  DefaultAgentName,
			DefaultModel: DefaultAgentModel,
		},
		UI: UIConfig{
			Theme:       "dark",
			ShowSpinner: true,
		},
		Staging: StagingConfig{
			MaxConcurrentUploads: DefaultMaxConcurrentUploads,
			WatchSnapshot:        true,
			WatchDebounceMs:      DefaultWatchDebounceMs,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
		},
	}
}
