package config

import "time"

// Config represents the main application configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Agent   AgentConfig   `yaml:"agent"`
	UI      UIConfig      `yaml:"ui"`
	Staging StagingConfig `yaml:"staging"`
	Logging LoggingConfig `yaml:"logging"`

	// Runtime version information
	Version string `yaml:"-"`
}

// APIConfig holds settings for the remote agent platform API.
type APIConfig struct {
	// Base URL of the platform, e.g. https://api.example.com
	BaseURL string `yaml:"base_url"`

	// Bearer token used on every request
	APIKey string `yaml:"api_key,omitempty"`

	// Retry configuration for API calls
	Retry RetryConfig `yaml:"retry"`
}

// RetryConfig holds retry settings for API calls.
type RetryConfig struct {
	MaxRetries  int           `yaml:"max_retries"`  // Maximum number of retry attempts (default: 3)
	RetryDelay  time.Duration `yaml:"retry_delay"`  // Initial delay between retries (default: 1s)
	HTTPTimeout time.Duration `yaml:"http_timeout"` // HTTP request timeout (default: 60s)
}

// AgentConfig holds defaults applied to newly drafted agents.
type AgentConfig struct {
	// Default display name for a draft agent
	DefaultName string `yaml:"default_name"`

	// Default model identifier for a draft agent
	DefaultModel string `yaml:"default_model"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	// Theme name passed to the markdown renderer (default: dark)
	Theme string `yaml:"theme"`

	// Show spinner while remote calls are in flight
	ShowSpinner bool `yaml:"show_spinner"`
}

// StagingConfig holds staging session settings.
type StagingConfig struct {
	// Maximum concurrent uploads during commit (default: 4)
	MaxConcurrentUploads int `yaml:"max_concurrent_uploads"`

	// Watch the staging snapshot for external changes
	WatchSnapshot bool `yaml:"watch_snapshot"`

	// Debounce for snapshot change events in milliseconds (default: 500)
	WatchDebounceMs int `yaml:"watch_debounce_ms"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
}
