package sylph

import (
	"context"

	"github.com/kbukum/sylph/future"
	"github.com/kbukum/sylph/httpclient"
	"github.com/kbukum/sylph/request"
)

// RawResponse is a completed exchange: status, headers and the unparsed body.
type RawResponse = httpclient.Response

// Transport sends request descriptors asynchronously. body is the serialized
// request body, nil when the descriptor has none. Connection, timeout and
// protocol failures fail the returned future with a transport error.
//
// *httpclient.Adapter is the default implementation.
type Transport interface {
	SendAsync(ctx context.Context, d request.Descriptor, body []byte) *future.Future[*RawResponse]
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, d request.Descriptor, body []byte) *future.Future[*RawResponse]

// SendAsync calls f.
func (f TransportFunc) SendAsync(ctx context.Context, d request.Descriptor, body []byte) *future.Future[*RawResponse] {
	return f(ctx, d, body)
}

var _ Transport = (*httpclient.Adapter)(nil)
