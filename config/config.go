package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Security SecurityConfig `json:"security"`
	Blocking BlockingConfig `json:"blocking"`
	Telegram TelegramConfig `json:"telegram"`
	Logging  LoggingConfig  `json:"logging"`

	// DefaultTier is assigned to dashboards created for users with no
	// resolved entitlement: "free" or "premium".
	DefaultTier string `json:"default_tier"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `json:"path"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	APIKey string `json:"api_key"`

	// PartnerCode is the shared secret for authorizing protected lock
	// changes. PartnerCodeHash, when set, takes precedence and holds a
	// bcrypt hash instead of plaintext.
	PartnerCode     string `json:"partner_code"`
	PartnerCodeHash string `json:"partner_code_hash"`
}

// BlockingConfig contains blocklist storage and sync settings
type BlockingConfig struct {
	// StoreType selects the local snapshot store: "file" or "sqlite"
	StoreType string `json:"store_type"`
	// FileDir is the snapshot directory for the file store
	FileDir string `json:"file_dir"`
	// RemoteBaseURL enables backend sync when set
	RemoteBaseURL string `json:"remote_base_url"`
	RemoteAPIKey  string `json:"remote_api_key"`
}

// TelegramConfig contains partner notification settings. Notifications
// are disabled when the token is empty.
type TelegramConfig struct {
	BotToken string `json:"bot_token"`
	ChatID   int64  `json:"chat_id"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: invalid server port", ErrInvalidConfig)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("%w: database path is required", ErrInvalidConfig)
	}

	if c.Security.APIKey == "" {
		return fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}

	switch c.Blocking.StoreType {
	case "":
		c.Blocking.StoreType = "file"
	case "file", "sqlite":
	default:
		return fmt.Errorf("%w: blocking store type must be file or sqlite", ErrInvalidConfig)
	}

	if c.Blocking.StoreType == "file" && c.Blocking.FileDir == "" {
		c.Blocking.FileDir = "./blocklists"
	}

	switch c.DefaultTier {
	case "":
		c.DefaultTier = "free"
	case "free", "premium":
	default:
		return fmt.Errorf("%w: default tier must be free or premium", ErrInvalidConfig)
	}

	if c.Telegram.BotToken != "" && c.Telegram.ChatID == 0 {
		return fmt.Errorf("%w: telegram chat id is required when a bot token is set", ErrInvalidConfig)
	}

	return nil
}

// Load loads configuration from a JSON file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigFileNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadFromEnv loads configuration from environment variables
// This is useful for containerized deployments
func LoadFromEnv() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Host: getEnv("TIMEOUT_HOST", "0.0.0.0"),
			Port: getEnvInt("TIMEOUT_PORT", 8080),
		},
		Database: DatabaseConfig{
			Path: getEnv("TIMEOUT_DB_PATH", "./timeout.db"),
		},
		Security: SecurityConfig{
			APIKey:          getEnv("TIMEOUT_API_KEY", ""),
			PartnerCode:     getEnv("TIMEOUT_PARTNER_CODE", ""),
			PartnerCodeHash: getEnv("TIMEOUT_PARTNER_CODE_HASH", ""),
		},
		Blocking: BlockingConfig{
			StoreType:     getEnv("TIMEOUT_BLOCKING_STORE", "file"),
			FileDir:       getEnv("TIMEOUT_BLOCKING_DIR", "./blocklists"),
			RemoteBaseURL: getEnv("TIMEOUT_SYNC_BASE_URL", ""),
			RemoteAPIKey:  getEnv("TIMEOUT_SYNC_API_KEY", ""),
		},
		Telegram: TelegramConfig{
			BotToken: getEnv("TIMEOUT_TELEGRAM_TOKEN", ""),
			ChatID:   getEnvInt64("TIMEOUT_TELEGRAM_CHAT_ID", 0),
		},
		Logging: LoggingConfig{
			Level:  getEnv("TIMEOUT_LOG_LEVEL", "info"),
			Format: getEnv("TIMEOUT_LOG_FORMAT", "json"),
		},
		DefaultTier: getEnv("TIMEOUT_DEFAULT_TIER", "free"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		fmt.Sscanf(value, "%d", &intVal)
		return intVal
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		var intVal int64
		fmt.Sscanf(value, "%d", &intVal)
		return intVal
	}
	return defaultValue
}
