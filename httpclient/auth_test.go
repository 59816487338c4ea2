package httpclient

import (
	"net/http"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/sylph/errors"
	"github.com/kbukum/sylph/validation"
)

func newTestRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "http://example.com/path", nil)
	if err != nil {
		t.Fatal(err)
	}
	return req
}

func TestBearerAuth(t *testing.T) {
	req := newTestRequest(t)
	if err := BearerAuth("my-token").apply(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer my-token" {
		t.Errorf("got %q, want %q", got, "Bearer my-token")
	}
}

func TestBasicAuth(t *testing.T) {
	req := newTestRequest(t)
	_ = BasicAuth("user", "pass").apply(req)
	u, p, ok := req.BasicAuth()
	if !ok || u != "user" || p != "pass" {
		t.Errorf("basic auth not set correctly: user=%q pass=%q ok=%v", u, p, ok)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	tests := []struct {
		name   string
		auth   *AuthConfig
		header string
		query  string
	}{
		{"default header", APIKeyAuth("secret-key"), "X-API-Key", ""},
		{"custom header", APIKeyAuthHeader("secret-key", "X-Custom-Key"), "X-Custom-Key", ""},
		{"query", APIKeyAuthQuery("secret-key", "api_key"), "", "api_key"},
		{"unnamed", &AuthConfig{Type: AuthAPIKey, Key: "secret-key"}, "X-API-Key", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newTestRequest(t)
			_ = tt.auth.apply(req)
			if tt.header != "" && req.Header.Get(tt.header) != "secret-key" {
				t.Errorf("header %s not set", tt.header)
			}
			if tt.query != "" && req.URL.Query().Get(tt.query) != "secret-key" {
				t.Errorf("query %s not set", tt.query)
			}
		})
	}
}

func TestCustomAuth(t *testing.T) {
	req := newTestRequest(t)
	_ = CustomAuth(func(req *http.Request) {
		req.Header.Set("X-Custom", "value")
	}).apply(req)
	if got := req.Header.Get("X-Custom"); got != "value" {
		t.Errorf("got %q, want %q", got, "value")
	}
}

func TestNilAndNoneAuth(t *testing.T) {
	var nilAuth *AuthConfig
	req := newTestRequest(t)
	if err := nilAuth.apply(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = (&AuthConfig{Type: AuthNone}).apply(req)
	if req.Header.Get("Authorization") != "" {
		t.Error("AuthNone should not set Authorization header")
	}
}

func TestJWTAuth(t *testing.T) {
	issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	cfg := JWTConfig{
		Secret:   "s3cret",
		Issuer:   "sylph",
		Subject:  "svc-todos",
		Audience: []string{"todos-api"},
		TTL:      time.Minute,
		Claims:   map[string]any{"scope": "todos:read"},
		now:      func() time.Time { return issued },
	}
	req := newTestRequest(t)
	if err := JWTAuth(cfg).apply(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw := req.Header.Get("Authorization")
	if len(raw) < len("Bearer ") || raw[:7] != "Bearer " {
		t.Fatalf("expected bearer token, got %q", raw)
	}

	claims := gojwt.MapClaims{}
	_, err := gojwt.ParseWithClaims(raw[7:], claims, func(*gojwt.Token) (any, error) {
		return []byte("s3cret"), nil
	}, gojwt.WithTimeFunc(func() time.Time { return issued.Add(30 * time.Second) }),
		gojwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["iss"] != "sylph" || claims["sub"] != "svc-todos" || claims["scope"] != "todos:read" {
		t.Errorf("unexpected claims %v", claims)
	}
	exp, _ := claims.GetExpirationTime()
	if exp == nil || !exp.Time.Equal(issued.Add(time.Minute)) {
		t.Errorf("unexpected exp %v", exp)
	}
}

func TestJWTAuth_MethodSelection(t *testing.T) {
	cfg := JWTConfig{Secret: "s", Method: "hs512"}
	if cfg.signingMethod() != gojwt.SigningMethodHS512 {
		t.Error("expected HS512")
	}
	if (&JWTConfig{}).signingMethod() != gojwt.SigningMethodHS256 {
		t.Error("expected HS256 default")
	}
}

func TestAuthValidate(t *testing.T) {
	tests := []struct {
		name  string
		auth  *AuthConfig
		field string
	}{
		{"bearer without token", &AuthConfig{Type: AuthBearer}, "auth.token"},
		{"basic without user", &AuthConfig{Type: AuthBasic}, "auth.username"},
		{"api key bad placement", &AuthConfig{Type: AuthAPIKey, Key: "k", In: "cookie"}, "auth.in"},
		{"jwt without config", &AuthConfig{Type: AuthJWT}, "auth.jwt"},
		{"jwt without secret", JWTAuth(JWTConfig{}), "auth.jwt.secret"},
		{"custom without func", &AuthConfig{Type: AuthCustom}, "auth.apply"},
		{"unknown type", &AuthConfig{Type: "digest"}, "auth.type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validation.New()
			tt.auth.validate(v)
			if !hasField(v.Errors(), tt.field) {
				t.Errorf("expected error on %s, got %v", tt.field, v.Errors())
			}
			if !errors.IsConfiguration(v.Error()) {
				t.Errorf("expected configuration error, got %v", v.Error())
			}
		})
	}

	v := validation.New()
	BearerAuth("token").validate(v)
	if v.HasErrors() {
		t.Errorf("valid bearer auth reported %v", v.Errors())
	}
}

func hasField(errs []validation.FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
