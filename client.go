package sylph

import (
	"context"

	"github.com/kbukum/sylph/httpclient"
	"github.com/kbukum/sylph/logger"
	"github.com/kbukum/sylph/observability"
	"github.com/kbukum/sylph/parser"
	"github.com/kbukum/sylph/request"
)

// Client binds a base request template, a transport and a parser. It is
// read-only after construction and safe for concurrent use.
type Client struct {
	base      request.Builder
	transport Transport
	parser    parser.Parser
	log       *logger.Logger
	owned     *httpclient.Adapter
}

// NewClient returns a client with no base request, the JSON parser and a
// default HTTP transport.
func NewClient() (*Client, error) {
	return NewBuilder().Client()
}

// ClientBuilder configures a Client. It is not safe for concurrent use;
// the Client it produces is.
type ClientBuilder struct {
	base       request.Builder
	httpConfig *httpclient.Config
	httpOpts   []httpclient.Option
	transport  Transport
	parser     parser.Parser
	log        *logger.Logger
}

// NewBuilder returns an empty client builder.
func NewBuilder() *ClientBuilder {
	return &ClientBuilder{base: request.NewBuilder()}
}

// SetBaseRequest sets the template every call derives from. Method, URI,
// headers, timeout, version and redirect policy set here act as defaults.
func (b *ClientBuilder) SetBaseRequest(base request.Builder) *ClientBuilder {
	b.base = base.Copy()
	return b
}

// SetClient configures the default HTTP transport. It is ignored when a
// transport is set with SetTransport.
func (b *ClientBuilder) SetClient(cfg httpclient.Config, opts ...httpclient.Option) *ClientBuilder {
	b.httpConfig = &cfg
	b.httpOpts = opts
	return b
}

// SetTransport replaces the default HTTP transport.
func (b *ClientBuilder) SetTransport(t Transport) *ClientBuilder {
	b.transport = t
	return b
}

// SetParser sets the parser used for request and response bodies.
func (b *ClientBuilder) SetParser(p parser.Parser) *ClientBuilder {
	b.parser = p
	return b
}

// SetLogger sets the logger for the client and its default transport.
func (b *ClientBuilder) SetLogger(l *logger.Logger) *ClientBuilder {
	b.log = l
	return b
}

// Client validates the configuration and returns the client. An unusable
// base request or transport config is reported as a configuration error.
func (b *ClientBuilder) Client() (*Client, error) {
	if err := b.base.Err(); err != nil {
		return nil, err
	}

	c := &Client{
		base:      b.base.Copy(),
		transport: b.transport,
		parser:    b.parser,
		log:       b.log,
	}
	if c.parser == nil {
		c.parser = parser.Default()
	}
	if c.log == nil {
		c.log = logger.Get("sylph")
	}

	if c.transport == nil {
		cfg := httpclient.Config{}
		if b.httpConfig != nil {
			cfg = *b.httpConfig
		}
		opts := b.httpOpts
		if b.log != nil {
			opts = append([]httpclient.Option{httpclient.WithLogger(b.log.WithComponent("httpclient"))}, opts...)
		}
		adapter, err := httpclient.New(cfg, opts...)
		if err != nil {
			return nil, err
		}
		c.transport = adapter
		c.owned = adapter
	}
	return c, nil
}

// Base returns a copy of the base request template.
func (c *Client) Base() request.Builder { return c.base.Copy() }

// Parser returns the body parser.
func (c *Client) Parser() parser.Parser { return c.parser }

// Transport returns the transport requests are sent through.
func (c *Client) Transport() Transport { return c.transport }

// Request derives a pending request from the base template alone.
func (c *Client) Request() *Pending {
	return &Pending{client: c, builder: c.base.Copy()}
}

// Do derives a pending request from the base template with opts applied.
func (c *Client) Do(opts ...request.Option) *Pending {
	return c.Request().With(opts...)
}

// GET derives a GET request. uri may be absolute or relative to the base URI.
func (c *Client) GET(uri string) *Pending {
	return c.Do(request.WithPath(uri), request.WithMethod(request.MethodGet, nil))
}

// POST derives a POST request carrying body, serialized at send time.
func (c *Client) POST(uri string, body any) *Pending {
	return c.Do(request.WithPath(uri), request.WithMethod(request.MethodPost, body))
}

// PUT derives a PUT request carrying body, serialized at send time.
func (c *Client) PUT(uri string, body any) *Pending {
	return c.Do(request.WithPath(uri), request.WithMethod(request.MethodPut, body))
}

// PATCH derives a PATCH request carrying body, serialized at send time.
func (c *Client) PATCH(uri string, body any) *Pending {
	return c.Do(request.WithPath(uri), request.WithMethod(request.MethodPatch, body))
}

// DELETE derives a DELETE request.
func (c *Client) DELETE(uri string) *Pending {
	return c.Do(request.WithPath(uri), request.WithMethod(request.MethodDelete, nil))
}

// CheckHealth reports the transport's health. Transports that do not
// report health are unknown.
func (c *Client) CheckHealth(ctx context.Context) observability.Health {
	return observability.CheckHealth(ctx, "sylph", c.transport)
}

// Close releases the default transport's idle connections. Transports set
// with SetTransport are left alone.
func (c *Client) Close(ctx context.Context) error {
	if c.owned == nil {
		return nil
	}
	return c.owned.Close(ctx)
}
