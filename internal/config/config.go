package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Quota    QuotaConfig    `mapstructure:"quota" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
	// TokenLifetimeMinutes controls access token expiry.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	// RefreshTokenLifetimeMinutes controls refresh token expiry and must
	// exceed the access token lifetime.
	RefreshTokenLifetimeMinutes int `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0,gtfield=TokenLifetimeMinutes"`
	// BcryptCost controls the work factor for password hashing.
	// The valid bcrypt range is 4-31; production deployments should use 10+.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"required,gte=4,lte=31"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name" validate:"required"`
	// RequestTimeoutSeconds bounds a single generation call to the model API.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
	// MaxRetries is the number of additional attempts after a transient failure.
	MaxRetries int `mapstructure:"max_retries" validate:"gte=0,lte=5"`
	// RetryBaseDelaySeconds is the initial backoff delay, doubled per attempt.
	RetryBaseDelaySeconds int `mapstructure:"retry_base_delay_seconds" validate:"required,gt=0"`
}

// QuotaConfig contains the freemium usage limits.
type QuotaConfig struct {
	// FreeDailyLimit is the number of generations a freemium user may run
	// per UTC day.
	FreeDailyLimit int `mapstructure:"free_daily_limit" validate:"required,gt=0"`
	// MaxSubjects caps the number of subjects per user.
	MaxSubjects int `mapstructure:"max_subjects" validate:"required,gt=0"`
	// StalePendingMinutes is the age after which a pending card set left
	// over from a crashed generation is marked failed at startup.
	StalePendingMinutes int `mapstructure:"stale_pending_minutes" validate:"required,gt=0"`
}
