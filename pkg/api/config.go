package api

import (
	"os"
	"time"
)

// APIConfig configures the REST API HTTP server.
//
// When Enabled is false, no API server is started (zero overhead).
type APIConfig struct {
	// Enabled controls whether the API server is started.
	// Default: true (API is enabled by default)
	// Use a pointer to distinguish "not set" from "explicitly false"
	Enabled *bool `mapstructure:"enabled" yaml:"enabled"`

	// Port is the HTTP port for the API endpoints.
	// Default: 8080
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero or negative value means there is no timeout.
	// Default: 30s (uploads arrive in the request body)
	ReadTimeout time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. A zero or negative value means there is no timeout.
	// Default: 30s (downloads stream in the response body)
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled. If zero, the value of ReadTimeout is used.
	// Default: 60s
	IdleTimeout time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`

	// JWT configures token generation and validation.
	JWT JWTSettings `mapstructure:"jwt" yaml:"jwt"`
}

// JWTSettings is the config-file shape of the JWT service settings.
type JWTSettings struct {
	// Secret is the HMAC signing key. Must be at least 32 characters.
	// May be left empty in the config file and provided via the
	// CUBBY_API_JWT_SECRET environment variable instead.
	Secret string `mapstructure:"secret" yaml:"secret,omitempty"`

	// Issuer is the token issuer claim. Default: "cubby"
	Issuer string `mapstructure:"issuer" yaml:"issuer"`

	// AccessTokenDuration is the lifetime of access tokens. Default: 15m.
	AccessTokenDuration time.Duration `mapstructure:"access_token_duration" yaml:"access_token_duration"`

	// RefreshTokenDuration is the lifetime of refresh tokens. Default: 168h.
	RefreshTokenDuration time.Duration `mapstructure:"refresh_token_duration" yaml:"refresh_token_duration"`
}

// IsEnabled returns whether the API server is enabled.
// Defaults to true if not explicitly set.
func (c *APIConfig) IsEnabled() bool {
	if c.Enabled == nil {
		return true
	}
	return *c.Enabled
}

// GetJWTSecret returns the signing secret, preferring the config value and
// falling back to the CUBBY_API_JWT_SECRET environment variable.
func (c *APIConfig) GetJWTSecret() string {
	if c.JWT.Secret != "" {
		return c.JWT.Secret
	}
	return os.Getenv("CUBBY_API_JWT_SECRET")
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *APIConfig) ApplyDefaults() {
	if c.Port <= 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 30 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60 * time.Second
	}
}
