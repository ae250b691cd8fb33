package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DefaultRelayURL is the DashScope text-generation endpoint.
const DefaultRelayURL = "https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation"

// Config holds the application configuration.
type Config struct {
	ServerPort         int      `mapstructure:"port" validate:"gt=0,lt=65536"`
	LogLevel           string   `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`
	LogPretty          bool     `mapstructure:"log_pretty"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins" validate:"min=1"`

	// Document store
	StoreDriver   string `mapstructure:"store_driver" validate:"oneof=mongo sqlite"`
	MongoURI      string `mapstructure:"mongo_uri" validate:"required_if=StoreDriver mongo"`
	MongoDatabase string `mapstructure:"mongo_database" validate:"required_if=StoreDriver mongo"`
	DatabasePath  string `mapstructure:"database_path" validate:"required_if=StoreDriver sqlite"`

	// AI relay
	RelayProvider string        `mapstructure:"relay_provider" validate:"oneof=dashscope gemini"`
	RelayAPIKey   string        `mapstructure:"relay_api_key" validate:"required"`
	RelayURL      string        `mapstructure:"relay_url" validate:"required_if=RelayProvider dashscope"`
	RelayModel    string        `mapstructure:"relay_model" validate:"required"`
	RelayTimeout  time.Duration `mapstructure:"relay_timeout" validate:"gt=0"`
	HistoryLimit  int           `mapstructure:"history_limit" validate:"gt=0"`

	// Credentials
	PasswordHashing string `mapstructure:"password_hashing" validate:"oneof=plain bcrypt"`
	JWTSecret       string `mapstructure:"jwt_secret" validate:"required_if=RequireToken true"`
	RequireToken    bool   `mapstructure:"require_token"`

	// Empty disables the sweeper.
	OrphanSweepSchedule string `mapstructure:"orphan_sweep_schedule"`
}

var defaults = map[string]interface{}{
	"port":                  9000,
	"log_level":             "info",
	"log_pretty":            false,
	"cors_allowed_origins":  []string{"*"},
	"store_driver":          "mongo",
	"mongo_uri":             "mongodb://localhost:27017",
	"mongo_database":        "tododatabase",
	"database_path":         "./todo.db",
	"relay_provider":        "dashscope",
	"relay_api_key":         "",
	"relay_url":             DefaultRelayURL,
	"relay_model":           "qwen-turbo",
	"relay_timeout":         10 * time.Second,
	"history_limit":         10,
	"password_hashing":      "plain",
	"jwt_secret":            "",
	"require_token":         false,
	"orphan_sweep_schedule": "@every 1h",
}

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory, then validates it.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
