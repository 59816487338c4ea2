package httpclient

import (
	"testing"
	"time"

	"github.com/kbukum/sylph/errors"
	"github.com/kbukum/sylph/request"
	"github.com/kbukum/sylph/resilience"
	"github.com/kbukum/sylph/security"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{CircuitBreaker: &resilience.CircuitBreakerConfig{}}
	cfg.ApplyDefaults()
	if cfg.Name != defaultName || cfg.Timeout != defaultTimeout {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.RequestIDHeader != "X-Request-ID" || cfg.UserAgent == "" {
		t.Errorf("unexpected header defaults %+v", cfg)
	}
	if cfg.CircuitBreaker.Name != defaultName {
		t.Errorf("breaker should inherit the client name, got %q", cfg.CircuitBreaker.Name)
	}

	cfg = Config{Name: "todos", Timeout: time.Second}
	cfg.ApplyDefaults()
	if cfg.Name != "todos" || cfg.Timeout != time.Second {
		t.Errorf("defaults overwrote explicit values: %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty", Config{}, false},
		{"versions", Config{Version: "HTTP/2", Redirect: "Always"}, false},
		{"bad version", Config{Version: "3"}, true},
		{"bad redirect", Config{Redirect: "sometimes"}, true},
		{"negative timeout", Config{Timeout: -time.Second}, true},
		{"auth missing token", Config{Auth: &AuthConfig{Type: AuthBearer}}, true},
		{"tls cert without key", Config{TLS: &security.TLSConfig{CertFile: "c.pem"}}, true},
		{"bad retry jitter", Config{Retry: &resilience.RetryConfig{Jitter: 2}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && !errors.IsConfiguration(err) {
				t.Errorf("expected configuration error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_VersionAndRedirect(t *testing.T) {
	cfg := Config{}
	if cfg.version() != request.VersionDefault {
		t.Error("empty version should leave the choice to the transport")
	}
	if cfg.redirect() != request.RedirectNormal {
		t.Error("redirect should default to normal")
	}
	cfg = Config{Version: "1.1", Redirect: "never"}
	if cfg.version() != request.HTTP11 || cfg.redirect() != request.RedirectNever {
		t.Errorf("got %s %s", cfg.version(), cfg.redirect())
	}
}

func TestConfig_AcceptsEveryParsedVersion(t *testing.T) {
	for _, name := range []string{"http1.1", "http_1_1", "http2", "http_2", "H2", "HTTP/1.1"} {
		cfg := Config{Version: name}
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			t.Errorf("%q: unexpected error: %v", name, err)
		}
		if cfg.version() == request.VersionDefault {
			t.Errorf("%q should select a protocol version", name)
		}
	}
}

func TestConfig_ApplyDefaultsLeavesSharedConfigsAlone(t *testing.T) {
	cb := resilience.CircuitBreakerConfig{MaxFailures: 2}
	rl := resilience.RateLimiterConfig{}
	bh := resilience.BulkheadConfig{MaxConcurrent: 1}
	shared := Config{Name: "todos", CircuitBreaker: &cb, RateLimiter: &rl, Bulkhead: &bh}

	first, second := shared, shared
	second.Name = "users"
	first.ApplyDefaults()
	second.ApplyDefaults()

	if cb.Name != "" || rl.Name != "" || bh.Name != "" {
		t.Errorf("caller configs were written: %q %q %q", cb.Name, rl.Name, bh.Name)
	}
	if first.CircuitBreaker.Name != "todos" || second.CircuitBreaker.Name != "users" {
		t.Errorf("unexpected breaker names %q %q", first.CircuitBreaker.Name, second.CircuitBreaker.Name)
	}
	if first.RateLimiter.Name != "todos" || first.Bulkhead.Name != "todos" || first.CircuitBreaker.MaxFailures != 2 {
		t.Errorf("defaults lost settings: %+v %+v %+v", first.CircuitBreaker, first.RateLimiter, first.Bulkhead)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New(Config{Version: "spdy"}); !errors.IsConfiguration(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
	if _, err := New(Config{TLS: &security.TLSConfig{CAFile: "/does/not/exist.pem"}}); !errors.IsConfiguration(err) {
		t.Errorf("expected configuration error for unreadable CA, got %v", err)
	}
}
