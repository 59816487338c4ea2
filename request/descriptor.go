package request

import (
	"net/url"
	"time"
)

// Descriptor is a validated, immutable request description. It is safe to
// share between goroutines; derive variants with With or Builder.
type Descriptor struct {
	method   Method
	uri      *url.URL
	headers  Headers
	body     any
	hasBody  bool
	timeout  time.Duration
	version  Version
	redirect Redirect
}

// Method returns the request method.
func (d Descriptor) Method() Method { return d.method }

// URI returns a copy of the target URI.
func (d Descriptor) URI() *url.URL { return cloneURL(d.uri) }

// Headers returns the request headers.
func (d Descriptor) Headers() Headers { return d.headers }

// Header returns a single header value, matching the name case-insensitively.
func (d Descriptor) Header(name string) string {
	v, _ := d.headers.Get(name)
	return v
}

// Body returns the unserialized body and whether one was set.
func (d Descriptor) Body() (any, bool) { return d.body, d.hasBody }

// Timeout returns the per-request timeout; zero means none.
func (d Descriptor) Timeout() time.Duration { return d.timeout }

// Version returns the preferred protocol version.
func (d Descriptor) Version() Version { return d.version }

// Redirect returns the redirect policy.
func (d Descriptor) Redirect() Redirect { return d.redirect }

// IsZero reports whether d was never built.
func (d Descriptor) IsZero() bool { return d.method == "" && d.uri == nil }

// Builder reopens d as a builder seeded with its fields.
func (d Descriptor) Builder() Builder {
	b := Builder{
		method:   d.method,
		uri:      cloneURL(d.uri),
		headers:  d.headers.Clone(),
		body:     d.body,
		hasBody:  d.hasBody,
		timeout:  d.timeout,
		version:  d.version,
		redirect: d.redirect,
	}
	if d.uri != nil {
		b.rawURI = d.uri.String()
	}
	return b
}

// With returns a new descriptor with opts applied over d. d is never modified.
func (d Descriptor) With(opts ...Option) (Descriptor, error) {
	return d.Builder().Apply(opts...).Build()
}

// String renders "METHOD uri".
func (d Descriptor) String() string {
	if d.uri == nil {
		return string(d.method)
	}
	return string(d.method) + " " + d.uri.String()
}
