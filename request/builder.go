package request

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kbukum/sylph/errors"
)

// Builder assembles a Descriptor. It is a value type: every setter returns
// an updated copy and leaves the receiver untouched, so a Builder can be
// shared as a template and specialized per call from many goroutines.
//
//	base := request.NewBuilder().
//	    Header("Content-Type", "application/json; charset=utf-8").
//	    URIString("https://jsonplaceholder.typicode.com/todos/1")
//
//	d, err := base.Copy().GET().Version(request.HTTP2).Timeout(5 * time.Second).Build()
type Builder struct {
	method   Method
	uri      *url.URL
	rawURI   string
	uriErr   error
	headers  Headers
	body     any
	hasBody  bool
	timeout  time.Duration
	version  Version
	redirect Redirect
}

// NewBuilder returns an empty builder.
func NewBuilder() Builder {
	return Builder{}
}

// Copy returns an independent builder with the same state.
func (b Builder) Copy() Builder {
	b.uri = cloneURL(b.uri)
	b.headers = b.headers.Clone()
	return b
}

// Apply runs every option against the builder in order.
func (b Builder) Apply(opts ...Option) Builder {
	for _, opt := range opts {
		if opt != nil {
			b = opt(b)
		}
	}
	return b
}

// Header sets a header, replacing any value whose name differs only in case.
func (b Builder) Header(name, value string) Builder {
	b.headers = b.headers.Set(name, value)
	return b
}

// Headers applies every entry of h on top of the current headers.
func (b Builder) Headers(h map[string]string) Builder {
	b.headers = b.headers.Merge(NewHeaders(h))
	return b
}

// RemoveHeader drops a header.
func (b Builder) RemoveHeader(name string) Builder {
	b.headers = b.headers.Del(name)
	return b
}

// URI sets the target URI.
func (b Builder) URI(u *url.URL) Builder {
	b.uri = cloneURL(u)
	b.rawURI = ""
	b.uriErr = nil
	if u != nil {
		b.rawURI = u.String()
	}
	return b
}

// URIString parses and sets the target URI. A parse failure is reported by Build.
func (b Builder) URIString(raw string) Builder {
	u, err := url.Parse(raw)
	if err != nil {
		b.uri = nil
		b.rawURI = raw
		b.uriErr = err
		return b
	}
	return b.URI(u)
}

// Path resolves p against the current URI. Absolute URIs replace the current
// one; relative paths are joined onto the current path and carry their own query.
func (b Builder) Path(p string) Builder {
	if p == "" {
		return b
	}
	if b.uri == nil || isAbsolute(p) {
		return b.URIString(p)
	}
	ref, err := url.Parse(p)
	if err != nil {
		b.uriErr = err
		b.rawURI = p
		return b
	}
	u := cloneURL(b.uri)
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(ref.Path, "/")
	u.RawPath = ""
	if ref.RawQuery != "" {
		u.RawQuery = ref.RawQuery
	}
	b.uri = u
	b.rawURI = u.String()
	return b
}

// Query sets a query parameter on the current URI. Without a URI it is a no-op.
func (b Builder) Query(key, value string) Builder {
	if b.uri == nil {
		return b
	}
	u := cloneURL(b.uri)
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	b.uri = u
	b.rawURI = u.String()
	return b
}

// Method sets an arbitrary method. A nil body clears any previous body.
func (b Builder) Method(m Method, body any) Builder {
	b.method = m
	b.body = body
	b.hasBody = body != nil
	return b
}

// GET sets the method to GET and clears the body.
func (b Builder) GET() Builder { return b.Method(MethodGet, nil) }

// DELETE sets the method to DELETE and clears the body.
func (b Builder) DELETE() Builder { return b.Method(MethodDelete, nil) }

// POST sets the method to POST with a typed body serialized at send time.
func (b Builder) POST(body any) Builder { return b.Method(MethodPost, body) }

// PUT sets the method to PUT with a typed body serialized at send time.
func (b Builder) PUT(body any) Builder { return b.Method(MethodPut, body) }

// PATCH sets the method to PATCH with a typed body serialized at send time.
func (b Builder) PATCH(body any) Builder { return b.Method(MethodPatch, body) }

// Body replaces the body without touching the method.
func (b Builder) Body(body any) Builder {
	b.body = body
	b.hasBody = body != nil
	return b
}

// Timeout sets the per-request timeout handed to the transport. Zero means none.
func (b Builder) Timeout(d time.Duration) Builder {
	b.timeout = d
	return b
}

// Version sets the preferred protocol version.
func (b Builder) Version(v Version) Builder {
	b.version = v
	return b
}

// FollowRedirects sets the redirect policy.
func (b Builder) FollowRedirects(r Redirect) Builder {
	b.redirect = r
	return b
}

// Build validates the builder and returns an immutable Descriptor.
// It fails with a configuration error when the method or URI is missing,
// when the URI could not be parsed, or when the URI is not absolute.
func (b Builder) Build() (Descriptor, error) {
	if b.uriErr != nil {
		return Descriptor{}, errors.InvalidURI(b.rawURI, b.uriErr)
	}
	if b.method == "" {
		return Descriptor{}, errors.MissingMethod()
	}
	if b.uri == nil {
		return Descriptor{}, errors.MissingURI()
	}
	if err := b.Err(); err != nil {
		return Descriptor{}, err
	}
	return Descriptor{
		method:   b.method,
		uri:      cloneURL(b.uri),
		headers:  b.headers.Clone(),
		body:     b.body,
		hasBody:  b.hasBody,
		timeout:  b.timeout,
		version:  b.version,
		redirect: b.redirect,
	}, nil
}

// Err reports problems that make the builder unusable as a template: an
// unparsable or relative URI, or a negative timeout. A missing method or URI
// is not an error here, since templates are completed per call.
func (b Builder) Err() error {
	if b.uriErr != nil {
		return errors.InvalidURI(b.rawURI, b.uriErr)
	}
	if b.uri != nil && (!b.uri.IsAbs() || b.uri.Host == "") {
		return errors.InvalidURI(b.uri.String(), fmt.Errorf("uri must be absolute"))
	}
	if b.timeout < 0 {
		return errors.InvalidConfig("timeout must not be negative").
			WithDetail("timeout", b.timeout.String())
	}
	return nil
}

// MustBuild is like Build but panics on error. Intended for package-level templates.
func (b Builder) MustBuild() Descriptor {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}

func isAbsolute(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
