package observability

import (
	"context"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/sylph/errors"
)

// RequestObservation tracks the span and metrics of one outbound request.
type RequestObservation struct {
	Client    string
	Method    string
	URL       string
	RequestID string
	StartTime time.Time

	span    trace.Span
	metrics *ClientMetrics
}

// StartRequest opens a client span for the request and records its start.
// metrics may be nil.
func StartRequest(ctx context.Context, tracer trace.Tracer, metrics *ClientMetrics, client, method string, u *url.URL, requestID string) (context.Context, *RequestObservation) {
	o := &RequestObservation{
		Client:    client,
		Method:    method,
		URL:       redact(u),
		RequestID: requestID,
		StartTime: time.Now(),
		metrics:   metrics,
	}

	ctx, o.span = tracer.Start(ctx, SpanHTTPRequest,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(AttrClient, client),
			attribute.String(AttrHTTPMethod, method),
			attribute.String(AttrURLFull, o.URL),
			attribute.String(AttrServerHost, u.Hostname()),
		),
	)
	if requestID != "" {
		o.span.SetAttributes(attribute.String(AttrRequestID, requestID))
	}

	if metrics != nil {
		metrics.RecordStart(ctx, client, method)
	}
	return ctx, o
}

// SetProtocol records the negotiated protocol version (e.g. "1.1", "2").
func (o *RequestObservation) SetProtocol(proto string) {
	o.span.SetAttributes(attribute.String(AttrProtocol, proto))
}

// End closes the span and records the outcome. A non-nil err marks the span
// failed and is counted under its error code.
func (o *RequestObservation) End(ctx context.Context, statusCode, bytes int, err error) {
	duration := time.Since(o.StartTime)

	if statusCode > 0 {
		o.span.SetAttributes(
			attribute.Int(AttrStatusCode, statusCode),
			attribute.Int(AttrBodySize, bytes),
		)
	}

	if err != nil {
		code := "unknown"
		if appErr, ok := errors.AsAppError(err); ok {
			code = string(appErr.Code)
		}
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, err.Error())
		o.span.SetAttributes(
			attribute.String(AttrErrorCode, code),
			attribute.String(AttrErrorMessage, err.Error()),
		)
		if o.metrics != nil {
			o.metrics.RecordError(ctx, o.Client, o.Method, code, duration)
		}
	} else if o.metrics != nil {
		o.metrics.RecordEnd(ctx, o.Client, o.Method, statusCode, bytes, duration)
	}

	o.span.End()
}

// Duration returns the elapsed time since the request started.
func (o *RequestObservation) Duration() time.Duration {
	return time.Since(o.StartTime)
}

// redact drops user info from the URL recorded on spans.
func redact(u *url.URL) string {
	if u == nil {
		return ""
	}
	if u.User == nil {
		return u.String()
	}
	c := *u
	c.User = nil
	return c.String()
}
