package httpclient

import (
	"time"

	"github.com/kbukum/sylph/request"
	"github.com/kbukum/sylph/resilience"
	"github.com/kbukum/sylph/security"
	"github.com/kbukum/sylph/validation"
	"github.com/kbukum/sylph/version"
)

const (
	defaultName            = "sylph"
	defaultTimeout         = 30 * time.Second
	defaultRequestIDHeader = "X-Request-ID"
	userAgentProduct       = "sylph-httpclient"

	// DisableRequestID turns off request ID generation when used as RequestIDHeader.
	DisableRequestID = "-"
)

// Config configures the HTTP transport.
type Config struct {
	// Name identifies the transport in logs, spans and metrics.
	Name string `yaml:"name" mapstructure:"name"`

	// Timeout applies to requests that carry no timeout of their own. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// Headers are default headers applied to all requests. Request headers win.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// UserAgent is sent unless the request sets its own.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// RequestIDHeader names the generated request ID header. "-" disables it.
	RequestIDHeader string `yaml:"request_id_header" mapstructure:"request_id_header"`

	// Version is the protocol used when a request has no preference: "1.1" or "2".
	Version string `yaml:"version" mapstructure:"version"`

	// Redirect is the policy used when a request has none: never, always or normal (default).
	Redirect string `yaml:"redirect" mapstructure:"redirect"`

	// StrictStatus turns 4xx and 5xx responses into transport errors.
	StrictStatus bool `yaml:"strict_status" mapstructure:"strict_status"`

	// Auth configures authentication applied to all requests.
	Auth *AuthConfig `yaml:"auth" mapstructure:"auth"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Retry configures transport-level retry. Nil disables retry.
	Retry *resilience.RetryConfig `yaml:"retry" mapstructure:"retry"`

	// CircuitBreaker configures circuit breaker behavior. Nil disables it.
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`

	// RateLimiter configures rate limiting. Nil disables it.
	RateLimiter *resilience.RateLimiterConfig `yaml:"rate_limiter" mapstructure:"rate_limiter"`

	// Bulkhead bounds the number of requests in flight. Nil disables it.
	Bulkhead *resilience.BulkheadConfig `yaml:"bulkhead" mapstructure:"bulkhead"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.RequestIDHeader == "" {
		c.RequestIDHeader = defaultRequestIDHeader
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent(userAgentProduct)
	}
	// Nested configs are copied before naming; the caller's structs are never written.
	if c.CircuitBreaker != nil && c.CircuitBreaker.Name == "" {
		cb := *c.CircuitBreaker
		cb.Name = c.Name
		c.CircuitBreaker = &cb
	}
	if c.RateLimiter != nil && c.RateLimiter.Name == "" {
		rl := *c.RateLimiter
		rl.Name = c.Name
		c.RateLimiter = &rl
	}
	if c.Bulkhead != nil && c.Bulkhead.Name == "" {
		bh := *c.Bulkhead
		bh.Name = c.Name
		c.Bulkhead = &bh
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	v := validation.New()
	v.OneOf("version", c.Version, request.VersionNames()...)
	v.OneOf("redirect", c.Redirect, request.RedirectNames()...)
	c.Auth.validate(v)
	if c.TLS != nil {
		v.Merge("tls", c.TLS.Validate())
	}
	return v.Error()
}

// version returns the protocol used for requests without a preference.
func (c *Config) version() request.Version {
	return request.ParseVersion(c.Version)
}

// redirect returns the policy used for requests without one.
func (c *Config) redirect() request.Redirect {
	if r := request.ParseRedirect(c.Redirect); r != request.RedirectDefault {
		return r
	}
	return request.RedirectNormal
}

// DefaultRetryConfig returns a default retry config suitable for HTTP clients.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	return &cfg
}

// DefaultCircuitBreakerConfig returns a default circuit breaker config.
func DefaultCircuitBreakerConfig(name string) *resilience.CircuitBreakerConfig {
	cfg := resilience.DefaultCircuitBreakerConfig(name)
	return &cfg
}

// DefaultRateLimiterConfig returns a default rate limiter config.
func DefaultRateLimiterConfig(name string) *resilience.RateLimiterConfig {
	cfg := resilience.DefaultRateLimiterConfig(name)
	return &cfg
}
