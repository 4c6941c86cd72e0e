package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/adapter-bridge/internal/logger"
)

// Config holds the process configuration of the bridge.
type Config struct {
	ServerPort          string
	Logging             logger.Config
	AdapterConfigPath   string
	CallbackMockEnabled bool
	Async               AsyncConfig
	Database            DBConfig
}

// AsyncConfig controls deferred runs started by the async endpoint.
type AsyncConfig struct {
	Delay      time.Duration
	Workers    int
	MaxPending int
}

// DBConfig holds the connection settings of the run ledger. An empty Host
// disables the ledger.
type DBConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Enabled reports whether a ledger database is configured.
func (c DBConfig) Enabled() bool {
	return c.Host != ""
}

// DSN returns the lib/pq connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.Username, c.Password, c.Database)
}

// SetDefaults registers the default of every configuration key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("ADAPTER_CONFIG_PATH", "config/adapter.yml")
	v.SetDefault("CALLBACK_MOCK_ENABLED", true)
	v.SetDefault("ASYNC_DELAY", "4s")
	v.SetDefault("ASYNC_WORKERS", 5)
	v.SetDefault("ASYNC_MAX_PENDING", 100)
	v.SetDefault("DB_HOST", "")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USERNAME", "bridge")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "bridge")
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", "5m")
}

// LoadConfig reads configuration from environment variables and a .env file,
// applies defaults and validates the result.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			slog.Error("failed to read config file", "error", err)
		}
	}

	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		ServerPort: v.GetString("SERVER_PORT"),
		Logging: logger.Config{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
			Output: strings.ToLower(v.GetString("LOG_OUTPUT")),
		},
		AdapterConfigPath:   v.GetString("ADAPTER_CONFIG_PATH"),
		CallbackMockEnabled: v.GetBool("CALLBACK_MOCK_ENABLED"),
		Async: AsyncConfig{
			Delay:      v.GetDuration("ASYNC_DELAY"),
			Workers:    v.GetInt("ASYNC_WORKERS"),
			MaxPending: v.GetInt("ASYNC_MAX_PENDING"),
		},
		Database: DBConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			Username:        v.GetString("DB_USERNAME"),
			Password:        v.GetString("DB_PASSWORD"),
			Database:        v.GetString("DB_NAME"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that have no usable fallback.
func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT must be set")
	}
	if c.AdapterConfigPath == "" {
		return fmt.Errorf("ADAPTER_CONFIG_PATH must be set")
	}
	if c.Async.Delay < 0 {
		return fmt.Errorf("ASYNC_DELAY must not be negative, got %s", c.Async.Delay)
	}
	if c.Async.Workers <= 0 {
		return fmt.Errorf("ASYNC_WORKERS must be positive, got %d", c.Async.Workers)
	}
	if c.Async.MaxPending <= 0 {
		return fmt.Errorf("ASYNC_MAX_PENDING must be positive, got %d", c.Async.MaxPending)
	}
	if c.Database.Enabled() && c.Database.Database == "" {
		return fmt.Errorf("DB_NAME must be set when DB_HOST is configured")
	}
	return nil
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
