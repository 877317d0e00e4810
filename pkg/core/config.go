package core

import (
	"errors"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// ExchangeName identifies Liquid in errors and logs.
	ExchangeName = "liquid"
	// DefaultBaseURL is the production REST endpoint.
	DefaultBaseURL = "https://api.liquid.com"
	// APIVersion is sent in the X-Quoine-API-Version header.
	APIVersion = "2"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvTokenID     = "LIQUID_TOKEN_ID"
	EnvTokenSecret = "LIQUID_TOKEN_SECRET"
	EnvBaseURL     = "LIQUID_BASE_URL"
	EnvLogLevel    = "LIQUID_LOG_LEVEL"
)

// Credentials holds the API token used to sign private requests.
type Credentials struct {
	// TokenID is the public token identifier, sent as the token_id claim.
	TokenID string `json:"token_id" validate:"required"`
	// TokenSecret is the shared secret used for HS256 signing.
	TokenSecret string `json:"token_secret" validate:"required"`
}

// Config contains all configuration options for a Liquid client.
type Config struct {
	BaseURL     string       `json:"base_url" validate:"required,url"`
	Credentials *Credentials `json:"credentials,omitempty"`

	// Timeout is the maximum duration for HTTP requests.
	Timeout      time.Duration `json:"timeout" validate:"min=1ms"`
	MaxRetries   int           `json:"max_retries" validate:"min=0"`
	RetryWaitMin time.Duration `json:"retry_wait_min" validate:"min=0"`
	RetryWaitMax time.Duration `json:"retry_wait_max" validate:"min=0"`

	// RateLimitRequests of zero disables client-side rate limiting.
	RateLimitRequests int           `json:"rate_limit_requests" validate:"min=0"`
	RateLimitPeriod   time.Duration `json:"rate_limit_period" validate:"min=0"`

	CircuitBreakerEnabled          bool          `json:"circuit_breaker_enabled"`
	CircuitBreakerFailThreshold    int           `json:"circuit_breaker_fail_threshold"`
	CircuitBreakerSuccessThreshold int           `json:"circuit_breaker_success_threshold"`
	CircuitBreakerTimeout          time.Duration `json:"circuit_breaker_timeout"`

	LogLevel string `json:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns a Config pointing at production with sensible defaults.
// Default values: 10s timeout, no retries, 300 requests per 5 minutes,
// circuit breaker disabled.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:      DefaultBaseURL,
		Timeout:      10 * time.Second,
		MaxRetries:   0,
		RetryWaitMin: 100 * time.Millisecond,
		RetryWaitMax: 1 * time.Second,

		RateLimitRequests: 300,
		RateLimitPeriod:   5 * time.Minute,

		CircuitBreakerEnabled:          false,
		CircuitBreakerFailThreshold:    5,
		CircuitBreakerSuccessThreshold: 2,
		CircuitBreakerTimeout:          30 * time.Second,

		LogLevel: "info",
	}
}

// ConfigFromEnv returns DefaultConfig overridden by LIQUID_* environment variables.
// Credentials are set only when both the token id and secret are present.
func ConfigFromEnv() *Config {
	c := DefaultConfig()
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	id, secret := os.Getenv(EnvTokenID), os.Getenv(EnvTokenSecret)
	if id != "" && secret != "" {
		c.Credentials = &Credentials{TokenID: id, TokenSecret: secret}
	}
	return c
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.RateLimitRequests > 0 && c.RateLimitPeriod <= 0 {
		return errors.New("RateLimitPeriod must be positive when RateLimitRequests is set")
	}
	if c.CircuitBreakerEnabled {
		if c.CircuitBreakerFailThreshold <= 0 {
			return errors.New("CircuitBreakerFailThreshold must be positive when enabled")
		}
		if c.CircuitBreakerSuccessThreshold <= 0 {
			return errors.New("CircuitBreakerSuccessThreshold must be positive when enabled")
		}
		if c.CircuitBreakerTimeout <= 0 {
			return errors.New("CircuitBreakerTimeout must be positive when enabled")
		}
	}
	return nil
}

// WithCredentials sets the API credentials and returns the config for chaining.
func (c *Config) WithCredentials(creds *Credentials) *Config {
	c.Credentials = creds
	return c
}

// WithBaseURL overrides the REST endpoint and returns the config for chaining.
func (c *Config) WithBaseURL(url string) *Config {
	c.BaseURL = url
	return c
}

// WithTimeout sets the request timeout and returns the config for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithRateLimit sets the rate limiting parameters and returns the config for chaining.
func (c *Config) WithRateLimit(requests int, period time.Duration) *Config {
	c.RateLimitRequests = requests
	c.RateLimitPeriod = period
	return c
}

// WithCircuitBreaker enables the circuit breaker with the given thresholds.
func (c *Config) WithCircuitBreaker(failThreshold, successThreshold int, timeout time.Duration) *Config {
	c.CircuitBreakerEnabled = true
	c.CircuitBreakerFailThreshold = failThreshold
	c.CircuitBreakerSuccessThreshold = successThreshold
	c.CircuitBreakerTimeout = timeout
	return c
}
