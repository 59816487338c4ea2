package httpclient

import (
	"crypto/tls"
	"fmt"
	"net/http"

	"golang.org/x/net/http2"

	"github.com/kbukum/sylph/errors"
	"github.com/kbukum/sylph/request"
)

const maxRedirects = 10

// transports holds one round tripper per protocol version. Both share the
// TLS settings of the config.
type transports struct {
	h1 *http.Transport
	h2 *http.Transport
}

func newTransports(tlsCfg *tls.Config) (*transports, error) {
	h1 := http.DefaultTransport.(*http.Transport).Clone()
	h1.ForceAttemptHTTP2 = false
	// A non-nil empty map disables HTTP/2 on this transport.
	h1.TLSNextProto = map[string]func(string, *tls.Conn) http.RoundTripper{}

	h2 := http.DefaultTransport.(*http.Transport).Clone()
	if tlsCfg != nil {
		h1.TLSClientConfig = tlsCfg.Clone()
		h2.TLSClientConfig = tlsCfg.Clone()
	}
	if _, err := http2.ConfigureTransports(h2); err != nil {
		return nil, errors.InvalidConfig(fmt.Sprintf("httpclient: configure http2: %v", err)).WithCause(err)
	}
	return &transports{h1: h1, h2: h2}, nil
}

// forVersion picks the round tripper for v. HTTP/2 is negotiated over TLS
// via ALPN; plain http URLs fall back to HTTP/1.1.
func (t *transports) forVersion(v request.Version) http.RoundTripper {
	if v == request.HTTP11 {
		return t.h1
	}
	return t.h2
}

func (t *transports) closeIdle() {
	t.h1.CloseIdleConnections()
	t.h2.CloseIdleConnections()
}

// redirectPolicy returns the CheckRedirect func for r.
func redirectPolicy(r request.Redirect) func(*http.Request, []*http.Request) error {
	switch r {
	case request.RedirectNever:
		return func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	case request.RedirectAlways:
		return func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		}
	default:
		return func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			// HTTPS to HTTP downgrades hand the 3xx back to the caller.
			if via[len(via)-1].URL.Scheme == "https" && req.URL.Scheme == "http" {
				return http.ErrUseLastResponse
			}
			return nil
		}
	}
}
