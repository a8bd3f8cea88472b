package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Path: "/path/to/db",
		},
		Security: SecurityConfig{
			APIKey: "test-key",
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid port - zero",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "invalid port - too large",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "missing database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: true,
		},
		{
			name:    "missing API key",
			mutate:  func(c *Config) { c.Security.APIKey = "" },
			wantErr: true,
		},
		{
			name:    "unknown blocking store type",
			mutate:  func(c *Config) { c.Blocking.StoreType = "redis" },
			wantErr: true,
		},
		{
			name:    "unknown default tier",
			mutate:  func(c *Config) { c.DefaultTier = "gold" },
			wantErr: true,
		},
		{
			name:    "telegram token without chat id",
			mutate:  func(c *Config) { c.Telegram.BotToken = "token" },
			wantErr: true,
		},
		{
			name: "telegram token with chat id",
			mutate: func(c *Config) {
				c.Telegram.BotToken = "token"
				c.Telegram.ChatID = 42
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(&config)
			err := config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	config := validConfig()
	require.NoError(t, config.Validate())

	assert.Equal(t, "file", config.Blocking.StoreType)
	assert.Equal(t, "./blocklists", config.Blocking.FileDir)
	assert.Equal(t, "free", config.DefaultTier)
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	validJSON := `{
		"server": {
			"host": "0.0.0.0",
			"port": 8080
		},
		"database": {
			"path": "/path/to/db"
		},
		"security": {
			"api_key": "test-key",
			"partner_code": "4321"
		},
		"blocking": {
			"store_type": "sqlite",
			"remote_base_url": "https://sync.example.com"
		},
		"default_tier": "premium"
	}`

	err := os.WriteFile(configPath, []byte(validJSON), 0644)
	require.NoError(t, err)

	config, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "/path/to/db", config.Database.Path)
	assert.Equal(t, "test-key", config.Security.APIKey)
	assert.Equal(t, "4321", config.Security.PartnerCode)
	assert.Equal(t, "sqlite", config.Blocking.StoreType)
	assert.Equal(t, "https://sync.example.com", config.Blocking.RemoteBaseURL)
	assert.Equal(t, "premium", config.DefaultTier)

	// Test loading non-existent file
	_, err = Load("/nonexistent/config.json")
	assert.ErrorIs(t, err, ErrConfigFileNotFound)

	// Test loading invalid JSON
	invalidPath := filepath.Join(tmpDir, "invalid.json")
	err = os.WriteFile(invalidPath, []byte("invalid json"), 0644)
	require.NoError(t, err)

	_, err = Load(invalidPath)
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	os.Setenv("TIMEOUT_HOST", "127.0.0.1")
	os.Setenv("TIMEOUT_PORT", "9090")
	os.Setenv("TIMEOUT_DB_PATH", "/custom/db/path")
	os.Setenv("TIMEOUT_API_KEY", "env-api-key")
	os.Setenv("TIMEOUT_PARTNER_CODE", "9999")
	os.Setenv("TIMEOUT_BLOCKING_STORE", "sqlite")
	os.Setenv("TIMEOUT_TELEGRAM_TOKEN", "env-bot-token")
	os.Setenv("TIMEOUT_TELEGRAM_CHAT_ID", "12345")

	defer func() {
		os.Unsetenv("TIMEOUT_HOST")
		os.Unsetenv("TIMEOUT_PORT")
		os.Unsetenv("TIMEOUT_DB_PATH")
		os.Unsetenv("TIMEOUT_API_KEY")
		os.Unsetenv("TIMEOUT_PARTNER_CODE")
		os.Unsetenv("TIMEOUT_BLOCKING_STORE")
		os.Unsetenv("TIMEOUT_TELEGRAM_TOKEN")
		os.Unsetenv("TIMEOUT_TELEGRAM_CHAT_ID")
	}()

	config, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", config.Server.Host)
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "/custom/db/path", config.Database.Path)
	assert.Equal(t, "env-api-key", config.Security.APIKey)
	assert.Equal(t, "9999", config.Security.PartnerCode)
	assert.Equal(t, "sqlite", config.Blocking.StoreType)
	assert.Equal(t, "env-bot-token", config.Telegram.BotToken)
	assert.Equal(t, int64(12345), config.Telegram.ChatID)
}
