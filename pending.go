package sylph

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/kbukum/sylph/errors"
	"github.com/kbukum/sylph/future"
	"github.com/kbukum/sylph/logger"
	"github.com/kbukum/sylph/parser"
	"github.com/kbukum/sylph/request"
)

// Pending is a send-ready request derived from a client's base template.
// Every override returns a new Pending; the receiver is never modified.
type Pending struct {
	client  *Client
	builder request.Builder
}

// With returns a copy with opts applied.
func (p *Pending) With(opts ...request.Option) *Pending {
	return &Pending{client: p.client, builder: p.builder.Apply(opts...)}
}

// Header returns a copy with the header set.
func (p *Pending) Header(name, value string) *Pending {
	return p.With(request.WithHeader(name, value))
}

// Query returns a copy with the query parameter set.
func (p *Pending) Query(key, value string) *Pending {
	return p.With(request.WithQuery(key, value))
}

// Timeout returns a copy with the per-request timeout set.
func (p *Pending) Timeout(d time.Duration) *Pending {
	return p.With(request.WithTimeout(d))
}

// Version returns a copy with the protocol version set.
func (p *Pending) Version(v request.Version) *Pending {
	return p.With(request.WithVersion(v))
}

// FollowRedirects returns a copy with the redirect policy set.
func (p *Pending) FollowRedirects(r request.Redirect) *Pending {
	return p.With(request.WithRedirect(r))
}

// Descriptor builds the request. It fails with a configuration error when
// the method or URI is missing.
func (p *Pending) Descriptor() (request.Descriptor, error) {
	return p.builder.Build()
}

// SendAsync dispatches the request and returns the raw response. A request
// that cannot be built or serialized yields an already-failed future.
func (p *Pending) SendAsync(ctx context.Context) *future.Future[*RawResponse] {
	d, body, err := p.prepare()
	if err != nil {
		return future.Failed[*RawResponse](err)
	}
	p.client.log.WithContext(ctx).Debug("dispatching request",
		logger.RequestFields(d.Method().String(), d.URI().Redacted()))
	return p.client.transport.SendAsync(ctx, d, body)
}

// prepare builds the descriptor and serializes its body with the client's
// parser. Content-Type and Accept default to the parser's content type.
func (p *Pending) prepare() (request.Descriptor, []byte, error) {
	d, err := p.builder.Build()
	if err != nil {
		return request.Descriptor{}, nil, err
	}

	var opts []request.Option
	ps := p.client.parser
	if d.Header("Accept") == "" {
		opts = append(opts, request.WithHeader("Accept", ps.ContentType()))
	}

	var body []byte
	if v, ok := d.Body(); ok {
		data, contentType, err := parser.Encode(ps, v)
		if err != nil {
			return request.Descriptor{}, nil, err
		}
		body = data
		if contentType != "" && d.Header("Content-Type") == "" {
			opts = append(opts, request.WithHeader("Content-Type", contentType))
		}
	}

	if len(opts) > 0 {
		if d, err = d.With(opts...); err != nil {
			return request.Descriptor{}, nil, err
		}
	}
	return d, body, nil
}

// SendAsync dispatches the base request as-is.
func (c *Client) SendAsync(ctx context.Context) *future.Future[*RawResponse] {
	return c.Request().SendAsync(ctx)
}

// Dispatch sends p and returns its response immediately, in the Dispatched
// state. Use Await or Done to wait for completion.
func Dispatch[T any](ctx context.Context, p *Pending) *Response[T] {
	raw := future.Handle(p.SendAsync(ctx), func(r *RawResponse, err error) (*RawResponse, error) {
		return r, classifyFailure(err)
	})
	return &Response[T]{raw: raw, parser: p.client.parser}
}

// classifyFailure turns failures a transport left unclassified into
// transport errors. Errors that already carry a code pass through.
func classifyFailure(err error) error {
	switch {
	case err == nil || errors.IsAppError(err):
		return err
	case stderrors.Is(err, context.Canceled):
		return errors.Canceled(err)
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.Timeout(err)
	default:
		return errors.ConnectionFailed(err)
	}
}

// Send dispatches p and resolves to its response once the exchange
// completes. On a transport failure the future fails with the transport
// error and still carries the Failed response.
func Send[T any](ctx context.Context, p *Pending) *future.Future[*Response[T]] {
	resp := Dispatch[T](ctx, p)
	return future.Handle(resp.raw, func(_ *RawResponse, err error) (*Response[T], error) {
		return resp, err
	})
}

// Body sends p and decodes the body as one T.
func Body[T any](ctx context.Context, p *Pending) *future.Future[T] {
	return future.Then(Send[T](ctx, p), func(r *Response[T]) (T, error) {
		return r.AsObject()
	})
}

// BodyList sends p and decodes the body as a list of T.
func BodyList[T any](ctx context.Context, p *Pending) *future.Future[[]T] {
	return future.Then(Send[T](ctx, p), func(r *Response[T]) ([]T, error) {
		return r.AsList()
	})
}
