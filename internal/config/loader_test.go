package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("AGENTDECK_API_URL", "")
	t.Setenv("AGENTDECK_API_KEY", "")
	t.Setenv("AGENTDECK_MODEL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultAgentName, cfg.Agent.DefaultName)
	assert.Equal(t, DefaultAgentModel, cfg.Agent.DefaultModel)
	assert.Equal(t, DefaultMaxConcurrentUploads, cfg.Staging.MaxConcurrentUploads)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("AGENTDECK_API_URL", "")
	t.Setenv("AGENTDECK_MODEL", "")
	t.Setenv("AGENTDECK_API_KEY", "env-key")

	configDir := filepath.Join(dir, "agentdeck")
	require.NoError(t, os.MkdirAll(configDir, 0700))
	raw := "api:\n  base_url: https://platform.example.com\n  api_key: file-key\nagent:\n  default_model: gpt-4o\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(raw), 0600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://platform.example.com", cfg.API.BaseURL)
	// Environment wins over the file
	assert.Equal(t, "env-key", cfg.API.APIKey)
	assert.Equal(t, "gpt-4o", cfg.Agent.DefaultModel)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.ErrorIs(t, cfg.Validate(), ErrMissingAuth)

	cfg.API.APIKey = "key"
	assert.NoError(t, cfg.Validate())

	cfg.API.BaseURL = ""
	assert.ErrorIs(t, cfg.Validate(), ErrMissingBaseURL)
}
