package request

import (
	"net/url"
	"time"
)

// Option is an override applied to a Builder. Options are pure: they
// receive a builder value and return the updated one.
type Option func(Builder) Builder

// WithMethod overrides the method and body.
func WithMethod(m Method, body any) Option {
	return func(b Builder) Builder { return b.Method(m, body) }
}

// WithURI overrides the target URI.
func WithURI(u *url.URL) Option {
	return func(b Builder) Builder { return b.URI(u) }
}

// WithURIString overrides the target URI from a string.
func WithURIString(raw string) Option {
	return func(b Builder) Builder { return b.URIString(raw) }
}

// WithPath resolves a path against the current URI.
func WithPath(p string) Option {
	return func(b Builder) Builder { return b.Path(p) }
}

// WithQuery sets a query parameter.
func WithQuery(key, value string) Option {
	return func(b Builder) Builder { return b.Query(key, value) }
}

// WithHeader sets a header.
func WithHeader(name, value string) Option {
	return func(b Builder) Builder { return b.Header(name, value) }
}

// WithHeaders merges a set of headers.
func WithHeaders(h map[string]string) Option {
	return func(b Builder) Builder { return b.Headers(h) }
}

// WithBody overrides the body.
func WithBody(body any) Option {
	return func(b Builder) Builder { return b.Body(body) }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(b Builder) Builder { return b.Timeout(d) }
}

// WithVersion overrides the protocol version.
func WithVersion(v Version) Option {
	return func(b Builder) Builder { return b.Version(v) }
}

// WithRedirect overrides the redirect policy.
func WithRedirect(r Redirect) Option {
	return func(b Builder) Builder { return b.FollowRedirects(r) }
}
