package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/longkey1/exnota/internal/version"
)

const (
	// EnvPrefix is the prefix for environment variables
	EnvPrefix = "EXNOTA"

	// ConfigFileName is the name of the config file
	ConfigFileName = "config"
	// ConfigFileType is the type of the config file
	ConfigFileType = "toml"

	// StoreFileName is the name of the file store inside the config directory
	StoreFileName = "store.json"
)

// StoreType selects the key-value store backend
type StoreType string

const (
	StoreFile   StoreType = "file"
	StoreRedis  StoreType = "redis"
	StoreMemory StoreType = "memory"
)

// Codec names accepted by the messaging bridge
const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
)

// Config holds the application configuration
type Config struct {
	// Client side
	ProxyURL      string        `mapstructure:"proxy_url"`
	AppVersion    string        `mapstructure:"app_version"`
	Store         StoreType     `mapstructure:"store"`
	StorePath     string        `mapstructure:"store_path"`
	RedisURL      string        `mapstructure:"redis_url"`
	Codec         string        `mapstructure:"codec"`
	BackgroundURL string        `mapstructure:"background_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	LogLevel      string        `mapstructure:"log_level"`

	// Proxy server side
	Listen          string  `mapstructure:"listen"`
	ClientID        string  `mapstructure:"client_id"`
	ClientSecret    string  `mapstructure:"client_secret"`
	NotionRateLimit float64 `mapstructure:"notion_rate_limit"`
	SecureCookies   bool    `mapstructure:"secure_cookies"`
}

// Load loads configuration from environment variables and the config file
// in the default config directory
func Load() (*Config, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	return LoadFrom(configDir)
}

// LoadFrom loads configuration from environment variables and the config
// file in configDir. A missing config file is not an error.
func LoadFrom(configDir string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("proxy_url", "http://localhost:9999/")
	v.SetDefault("app_version", version.Get())
	v.SetDefault("store", string(StoreFile))
	v.SetDefault("store_path", filepath.Join(configDir, StoreFileName))
	v.SetDefault("redis_url", "")
	v.SetDefault("codec", CodecJSON)
	v.SetDefault("background_url", "")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("log_level", "warn")
	v.SetDefault("listen", ":9999")
	v.SetDefault("client_id", "")
	v.SetDefault("client_secret", "")
	v.SetDefault("notion_rate_limit", 3.0)
	v.SetDefault("secure_cookies", false)

	// The proxy also honours the variable names used by Notion's docs
	if err := v.BindEnv("client_id", EnvPrefix+"_CLIENT_ID", "NOTION_CLIENT_ID"); err != nil {
		return nil, fmt.Errorf("failed to bind client_id: %w", err)
	}
	if err := v.BindEnv("client_secret", EnvPrefix+"_CLIENT_SECRET", "NOTION_INTEGRATION_SECRET"); err != nil {
		return nil, fmt.Errorf("failed to bind client_secret: %w", err)
	}

	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "exnota"), nil
}

// EnsureConfigDir ensures the configuration directory exists
func EnsureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(configDir, 0700)
}

// Validate checks if the client configuration is valid
func (c *Config) Validate() error {
	if c.ProxyURL == "" {
		return fmt.Errorf("proxy_url is required. Set EXNOTA_PROXY_URL or configure in ~/.config/exnota/config.toml")
	}
	if c.AppVersion == "" {
		return fmt.Errorf("app_version must not be empty")
	}
	switch c.Store {
	case StoreFile:
		if c.StorePath == "" {
			return fmt.Errorf("store_path is required for the file store")
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("redis_url is required for the redis store. Set EXNOTA_REDIS_URL")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store: %s", c.Store)
	}
	switch c.Codec {
	case CodecJSON, CodecMsgpack:
	default:
		return fmt.Errorf("unknown codec: %s", c.Codec)
	}
	return nil
}

// ValidateServer checks if the proxy server configuration is valid
func (c *Config) ValidateServer() error {
	if c.ClientID == "" {
		return fmt.Errorf("client_id is required. Set EXNOTA_CLIENT_ID or NOTION_CLIENT_ID")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("client_secret is required. Set EXNOTA_CLIENT_SECRET or NOTION_INTEGRATION_SECRET")
	}
	if c.NotionRateLimit <= 0 {
		return fmt.Errorf("notion_rate_limit must be positive, got %v", c.NotionRateLimit)
	}
	return nil
}
