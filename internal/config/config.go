package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Notifier NotifierConfig `mapstructure:"notifier" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// NotifierConfig contains settings for the external email service that
// delivers notification events.
type NotifierConfig struct {
	// URL is the email service endpoint that receives notification POSTs.
	URL string `mapstructure:"url" validate:"required,url"`

	// TimeoutSeconds bounds each notification send; a slow email service
	// must not block task updates.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"gte=1,lte=60"`

	// DefaultRecipient receives completion and reminder notifications.
	DefaultRecipient string `mapstructure:"default_recipient" validate:"required,email"`
}

// AuthConfig contains the API-key settings. The API-key check is a
// stub: requests present a key, the server compares its SHA-256 digest
// against the configured list. When no digests are configured the
// check is disabled.
type AuthConfig struct {
	// APIKeyDigests holds hex-encoded SHA-256 digests of accepted keys.
	APIKeyDigests []string `mapstructure:"api_key_digests"`
}
