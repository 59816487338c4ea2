package request

import (
	"slices"
	"strings"
)

// Method is an HTTP request method.
type Method string

// Supported methods.
const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
)

// String returns the method token.
func (m Method) String() string { return string(m) }

// HasBody reports whether the method conventionally carries a request body.
func (m Method) HasBody() bool {
	return m == MethodPost || m == MethodPut || m == MethodPatch
}

// ParseMethod normalizes a method token. Unknown tokens are kept verbatim
// in upper case; an empty token yields "".
func ParseMethod(s string) Method {
	return Method(strings.ToUpper(strings.TrimSpace(s)))
}

// Version selects the HTTP protocol version the transport should use.
type Version int

const (
	// VersionDefault lets the transport decide.
	VersionDefault Version = iota
	// HTTP11 restricts the exchange to HTTP/1.1.
	HTTP11
	// HTTP2 prefers HTTP/2 where the server supports it.
	HTTP2
)

// String returns the version name.
func (v Version) String() string {
	switch v {
	case HTTP11:
		return "HTTP/1.1"
	case HTTP2:
		return "HTTP/2"
	default:
		return "default"
	}
}

var (
	http11Names = []string{"1.1", "http/1.1", "http1.1", "http_1_1"}
	http2Names  = []string{"2", "http/2", "http2", "h2", "http_2"}
)

// VersionNames lists every lowercase string ParseVersion recognizes,
// "default" included.
func VersionNames() []string {
	return slices.Concat([]string{"default"}, http11Names, http2Names)
}

// ParseVersion maps config strings ("1.1", "http/1.1", "2", "http/2") to a Version.
func ParseVersion(s string) Version {
	name := strings.ToLower(strings.TrimSpace(s))
	switch {
	case slices.Contains(http11Names, name):
		return HTTP11
	case slices.Contains(http2Names, name):
		return HTTP2
	default:
		return VersionDefault
	}
}

// Redirect is the redirect policy applied to a request.
type Redirect int

const (
	// RedirectDefault lets the transport decide.
	RedirectDefault Redirect = iota
	// RedirectNever returns 3xx responses to the caller as-is.
	RedirectNever
	// RedirectAlways follows every redirect.
	RedirectAlways
	// RedirectNormal follows redirects except HTTPS to HTTP downgrades.
	RedirectNormal
)

// String returns the policy name.
func (r Redirect) String() string {
	switch r {
	case RedirectNever:
		return "never"
	case RedirectAlways:
		return "always"
	case RedirectNormal:
		return "normal"
	default:
		return "default"
	}
}

// RedirectNames lists every lowercase string ParseRedirect recognizes.
func RedirectNames() []string {
	return []string{"default", "never", "always", "normal"}
}

// ParseRedirect maps config strings to a Redirect policy.
func ParseRedirect(s string) Redirect {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "never":
		return RedirectNever
	case "always":
		return RedirectAlways
	case "normal":
		return RedirectNormal
	default:
		return RedirectDefault
	}
}
