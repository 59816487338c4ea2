// Package httpclient is the default transport: it executes request
// descriptors over net/http and returns raw responses.
//
// Per request it honours the descriptor's timeout, protocol version
// (HTTP/1.1 only, or HTTP/2 negotiated over TLS) and redirect policy,
// falling back to the Config values. Every exchange gets a request ID,
// a client span with W3C trace context propagation, and metrics.
//
// # Basic Usage
//
//	adapter, err := httpclient.New(httpclient.Config{
//	    Timeout: 10 * time.Second,
//	    Auth:    httpclient.BearerAuth("my-token"),
//	})
//
//	d := request.NewBuilder().URIString("https://api.example.com/todos/1").GET().MustBuild()
//	resp, err := adapter.SendAsync(ctx, d, nil).Await(ctx)
//
// # With Resilience
//
// Retry, circuit breaker, rate limiter and bulkhead are opt-in:
//
//	adapter, err := httpclient.New(httpclient.Config{
//	    Retry:          httpclient.DefaultRetryConfig(),
//	    CircuitBreaker: httpclient.DefaultCircuitBreakerConfig("todos"),
//	})
//
// Errors are *errors.AppError values of the transport kind: CONNECTION_FAILED,
// TIMEOUT, CANCELED, CIRCUIT_OPEN, RATE_LIMITED, TOO_MANY_IN_FLIGHT, and with
// StrictStatus the status classes UNAUTHORIZED, NOT_FOUND, BAD_REQUEST and
// SERVER_ERROR.
package httpclient
