package httpclient

import (
	"fmt"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/sylph/errors"
	"github.com/kbukum/sylph/validation"
)

const defaultJWTTTL = 5 * time.Minute

// JWTConfig configures the HMAC-signed token attached by AuthJWT.
type JWTConfig struct {
	// Secret is the HMAC signing key.
	Secret string `yaml:"secret" mapstructure:"secret"`
	// Method is HS256 (default), HS384 or HS512.
	Method string `yaml:"method" mapstructure:"method"`
	// Issuer is the "iss" claim.
	Issuer string `yaml:"issuer" mapstructure:"issuer"`
	// Subject is the "sub" claim.
	Subject string `yaml:"subject" mapstructure:"subject"`
	// Audience is the "aud" claim.
	Audience []string `yaml:"audience" mapstructure:"audience"`
	// TTL is the token lifetime. Defaults to 5m.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
	// Claims are extra private claims added to every token.
	Claims map[string]any `yaml:"claims" mapstructure:"claims"`

	now func() time.Time
}

func (c *JWTConfig) validate(v *validation.Validator) {
	v.Check(c.Secret != "", "auth.jwt.secret", "is required for HMAC signing")
	v.OneOf("auth.jwt.method", c.Method, "hs256", "hs384", "hs512")
	v.Check(c.TTL >= 0, "auth.jwt.ttl", "must not be negative")
}

func (c *JWTConfig) signingMethod() gojwt.SigningMethod {
	switch strings.ToUpper(c.Method) {
	case "HS384":
		return gojwt.SigningMethodHS384
	case "HS512":
		return gojwt.SigningMethodHS512
	default:
		return gojwt.SigningMethodHS256
	}
}

// sign mints a token valid from now for TTL.
func (c *JWTConfig) sign() (string, error) {
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	ttl := c.TTL
	if ttl <= 0 {
		ttl = defaultJWTTTL
	}
	issued := now()

	claims := gojwt.MapClaims{}
	for k, v := range c.Claims {
		claims[k] = v
	}
	claims["iat"] = gojwt.NewNumericDate(issued)
	claims["exp"] = gojwt.NewNumericDate(issued.Add(ttl))
	if c.Issuer != "" {
		claims["iss"] = c.Issuer
	}
	if c.Subject != "" {
		claims["sub"] = c.Subject
	}
	if len(c.Audience) > 0 {
		claims["aud"] = gojwt.ClaimStrings(c.Audience)
	}

	token, err := gojwt.NewWithClaims(c.signingMethod(), claims).SignedString([]byte(c.Secret))
	if err != nil {
		return "", errors.InvalidConfig(fmt.Sprintf("auth: sign jwt: %v", err)).WithCause(err)
	}
	return token, nil
}
