package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix namespaces every environment variable this service reads,
// e.g. VOCABVAL_SERVER_PORT maps to server.port.
const envPrefix = "VOCABVAL"

// Load reads configuration from environment variables, applies defaults,
// and validates the result. Environment variables take precedence over
// defaults. Returns a populated Config or an error describing the first
// invalid setting.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.environment", "development")
	v.SetDefault("backend.url", "http://localhost:8787")
	v.SetDefault("sync.data_dir", "./data")
	v.SetDefault("sync.api_key_hash", "")
	v.SetDefault("sync.auto_sync", true)
	v.SetDefault("sync.watch_cache", false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	// Running without sync auth is a development convenience only.
	if cfg.Server.Environment == "production" && cfg.Sync.APIKeyHash == "" {
		return nil, fmt.Errorf("sync.api_key_hash is required in production")
	}

	return &cfg, nil
}
