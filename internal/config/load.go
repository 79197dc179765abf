package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults for everything a deployment does not have to set explicitly.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.request_timeout_seconds", 30)
	v.SetDefault("llm.max_retries", 2)
	v.SetDefault("llm.retry_base_delay_seconds", 1)
	v.SetDefault("quota.free_daily_limit", 5)
	v.SetDefault("quota.max_subjects", 3)
	v.SetDefault("quota.stale_pending_minutes", 15)

	// Optional config file; environment variables override it.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// STUDYFLASH_SERVER_PORT maps to server.port, and so on.
	v.SetEnvPrefix("STUDYFLASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v,
		"server.port",
		"server.log_level",
		"server.shutdown_timeout_seconds",
		"database.url",
		"auth.jwt_secret",
		"auth.token_lifetime_minutes",
		"auth.refresh_token_lifetime_minutes",
		"auth.bcrypt_cost",
		"llm.gemini_api_key",
		"llm.model_name",
		"llm.request_timeout_seconds",
		"llm.max_retries",
		"llm.retry_base_delay_seconds",
		"quota.free_daily_limit",
		"quota.max_subjects",
		"quota.stale_pending_minutes",
	)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// bindEnvKeys registers each key with viper so AutomaticEnv resolves it even
// when the key is absent from defaults and config files.
func bindEnvKeys(v *viper.Viper, keys ...string) {
	for _, key := range keys {
		// BindEnv only errors on an empty key name.
		_ = v.BindEnv(key)
	}
}
